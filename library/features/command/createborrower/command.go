package createborrower

const (
	commandType = "CreateBorrower"
)

// Command represents the intent to register a borrower.
type Command struct {
	Name  string
	Email string
	Phone string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(name string, email string, phone string) Command {
	return Command{Name: name, Email: email, Phone: phone}
}
