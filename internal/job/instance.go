package job

// Instance is one concrete unit of work: a template paired with at most one
// matrix axis. Instances of the same job are mutually independent.
type Instance struct {
	// Job is the template this instance was expanded from.
	Job *Template
	// Axis is the matrix cell for this instance, or nil when the template
	// has no axes.
	Axis *Axis
}

// Key returns the unique identifier of the instance within a run: the job
// name alone for a single-instance job, or "name#displayName" for a matrix
// instance.
func (i *Instance) Key() string {
	if i.Axis == nil {
		return i.Job.Name
	}
	return i.Job.Name + "#" + i.Axis.DisplayName
}

// Expand produces the concrete instances of a template: a single instance
// for a template with no axes, otherwise one instance per axis element, in
// axis order. Every instance inherits the template's dependencies and
// condition unchanged; axes only vary execution parameters, never the
// instance's place in the graph.
func Expand(t *Template) []*Instance {
	if len(t.Axes) == 0 {
		return []*Instance{{Job: t}}
	}
	instances := make([]*Instance, 0, len(t.Axes))
	for i := range t.Axes {
		instances = append(instances, &Instance{Job: t, Axis: &t.Axes[i]})
	}
	return instances
}
