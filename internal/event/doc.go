// Package event models the trigger that started a pipeline run: the event
// kind (push, pull request, or tag) and the git ref it carries. The context
// is created once per run and is immutable afterwards.
package event
