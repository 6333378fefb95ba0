package createauthor

const (
	commandType = "CreateAuthor"
)

// Command represents the intent to create an author.
type Command struct {
	Name string
	Bio  *string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(name string, bio *string) Command {
	return Command{Name: name, Bio: bio}
}
