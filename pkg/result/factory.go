package result

// Factory builds results using a fixed set of Messages. The package level
// functions use a Factory built with English.
type Factory struct {
	msgs Messages
}

// NewFactory returns a Factory that uses the texts in m.
func NewFactory(m Messages) Factory {
	return Factory{msgs: m}
}

// Messages returns the texts the factory was built with.
func (f Factory) Messages() Messages {
	return f.msgs
}

func (Factory) Success() Result {
	return Result{Success: true}
}

// Fail stores errorMsg verbatim.
func (Factory) Fail(errorMsg string) Result {
	return failure(errorMsg)
}

func (f Factory) FailWithRunPrefix(errorMsg string) Result {
	return failure(f.msgs.RunFailurePrefix + errorMsg)
}

func (f Factory) NotFound() Result {
	return failure(f.msgs.NotFound)
}

// FromError keeps only the text of err. A nil err yields the bare prefix.
func (f Factory) FromError(err error) Result {
	var desc string
	if err != nil {
		desc = err.Error()
	}

	return failure(f.msgs.RunFailurePrefix + desc)
}

func (f Factory) StorageError() Result {
	return failure(f.msgs.StorageError)
}

func failure(msg string) Result {
	return Result{
		Success: false,
		Message: msg,
	}
}
