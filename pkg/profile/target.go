package profile

// TargetKind discriminates the two supported profiling subjects.
type TargetKind int

const (
	// TargetCall profiles one invocation of an in-process callable.
	TargetCall TargetKind = iota + 1

	// TargetProcess profiles an already-running process by reference.
	TargetProcess
)

// Func is the callable shape accepted for call targets. Positional and
// keyword arguments are passed through to the function unmodified.
type Func func(args []any, kwargs map[string]any) (any, error)

// Call describes one invocation of a callable target: the function plus the
// arguments it will be invoked with.
type Call struct {
	Fn     Func
	Args   []any
	Kwargs map[string]any
}

// Invoke runs the callable with its bound arguments.
func (c *Call) Invoke() (any, error) {
	return c.Fn(c.Args, c.Kwargs)
}

// Target is the subject of a profiling run. It holds either a callable
// invocation or an opaque reference to a live process; the zero value is
// neither and must not be profiled.
//
// Target is a small value type. Copies share the underlying Call, so every
// back end constructed for the same run observes the same invocation.
type Target struct {
	kind TargetKind
	call *Call
	ref  string
}

// NewCall builds a callable target. Nil args and kwargs are replaced with
// freshly allocated empty collections so that no two targets ever share
// argument state.
func NewCall(fn Func, args []any, kwargs map[string]any) Target {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return Target{
		kind: TargetCall,
		call: &Call{Fn: fn, Args: args, Kwargs: kwargs},
	}
}

// NewProcess builds a target referencing a running process. The reference is
// opaque to the orchestration core; back ends interpret it, typically as a
// PID or a debug endpoint address.
func NewProcess(ref string) Target {
	return Target{kind: TargetProcess, ref: ref}
}

// Kind reports which variant this target holds.
func (t Target) Kind() TargetKind {
	return t.kind
}

// Call returns the callable invocation for call targets, nil otherwise.
func (t Target) Call() *Call {
	return t.call
}

// ProcessRef returns the process reference for process targets, empty
// otherwise.
func (t Target) ProcessRef() string {
	return t.ref
}
