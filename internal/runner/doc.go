// Package runner maps job templates to the Go handlers that execute their
// instances, and defines the narrow collaborator contracts the handlers
// invoke: the build tool, the dependency auditor, and the quality checker.
// The handlers are thin glue; all orchestration lives in the scheduler.
package runner
