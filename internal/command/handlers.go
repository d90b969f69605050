package command

import (
	"context"
	"fmt"
)

const helpContent = `PHEW
These commands are available.

A star (*) next to the name means that the command is only available for registered users.

help                            []
clear                           []
whoami                          []
login                           [-u name] [-p password]
signup                          [-u name] [-e email] [-p password]
logout*                         []
ls*                             [-f path ...]
mkdir*                          [-d directory ...]
cd*                             [directory]
touch*                          [-p password] filename`

// help lists the available commands. It behaves identically for every
// identity.
func (d *Dispatcher) help(_ context.Context, _ *Invocation) Result {
	return ok(Payload{Content: helpContent})
}

// clear signals the client to wipe its scrollback.
func (d *Dispatcher) clear(_ context.Context, _ *Invocation) Result {
	return ok(Payload{Clear: true})
}

// whoami renders the current identity, anonymous or not.
func (d *Dispatcher) whoami(_ context.Context, inv *Invocation) Result {
	user := inv.User
	return ok(Payload{
		Content: fmt.Sprintf(`%s
%s
user_id: %s
email: %s
role: %s`,
			user.Name,
			lineOfLength(len(user.Name), "-"),
			user.ID,
			user.Email,
			user.Role,
		),
	})
}
