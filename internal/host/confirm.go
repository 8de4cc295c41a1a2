package host

// Prompter asks the user a yes/no question and reports the answer. An error
// means the prompt could not be shown or was dismissed.
type Prompter interface {
	Confirm(message string) (bool, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(message string) (bool, error)

func (f PrompterFunc) Confirm(message string) (bool, error) { return f(message) }

// ConfirmQuit asks for confirmation and runs quit only on an explicit yes.
// A declined prompt or a prompt error aborts silently.
func ConfirmQuit(p Prompter, quit func()) {
	if p == nil || quit == nil {
		return
	}
	ok, err := p.Confirm("Confirm quit?")
	if err != nil || !ok {
		return
	}
	quit()
}
