package repository

// Result is the failure shape every mutating call returns. Validation,
// conflict and integrity failures all come back as {success:false, error} so
// callers surface the message without a try/catch; nothing in this layer
// panics across the boundary.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func OK() Result {
	return Result{Success: true}
}

func Fail(msg string) Result {
	return Result{Success: false, Error: msg}
}

// ErrStorage is the generic message shown for serialization or storage
// failures; detail goes to the log, not the user.
const ErrStorage = "something went wrong saving your changes, please try again"
