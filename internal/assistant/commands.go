package assistant

import (
	"fmt"
	"strings"

	"github.com/smileynet/contactbook/internal/contact"
)

// command is one entry of the command table.
type command struct {
	name  string
	usage string
	arity int // exact argument count; -1 accepts any
	run   func(a *Assistant, args []string) (Reply, error)
}

// commands is ordered as listed by the help command. It is filled in init
// because the help handler reads it.
var commands []command

func init() {
	commands = []command{
		{name: "hello", usage: "hello", arity: 0, run: (*Assistant).hello},
		{name: "add", usage: "add <name> <phone>", arity: 2, run: (*Assistant).add},
		{name: "change", usage: "change <name> <old-phone> <new-phone>", arity: 3, run: (*Assistant).change},
		{name: "phone", usage: "phone <name>", arity: 1, run: (*Assistant).phone},
		{name: "remove-phone", usage: "remove-phone <name> <phone>", arity: 2, run: (*Assistant).removePhone},
		{name: "delete", usage: "delete <name>", arity: 1, run: (*Assistant).deleteContact},
		{name: "all", usage: "all", arity: 0, run: (*Assistant).all},
		{name: "add-birthday", usage: "add-birthday <name> <DD.MM.YYYY>", arity: 2, run: (*Assistant).addBirthday},
		{name: "show-birthday", usage: "show-birthday <name>", arity: 1, run: (*Assistant).showBirthday},
		{name: "birthdays", usage: "birthdays", arity: 0, run: (*Assistant).birthdays},
		{name: "help", usage: "help", arity: 0, run: (*Assistant).help},
		{name: "close", usage: "close", arity: -1, run: (*Assistant).quit},
		{name: "exit", usage: "exit", arity: -1, run: (*Assistant).quit},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// Usages returns the usage line of every command, in help order.
func Usages() []string {
	out := make([]string, len(commands))
	for i, c := range commands {
		out[i] = c.usage
	}
	return out
}

func (a *Assistant) hello([]string) (Reply, error) {
	return Reply{Text: "How can I help you?"}, nil
}

func (a *Assistant) quit([]string) (Reply, error) {
	return Reply{Text: "Good bye!", Quit: true}, nil
}

func (a *Assistant) help([]string) (Reply, error) {
	return Reply{Text: "Commands:\n  " + strings.Join(Usages(), "\n  ")}, nil
}

// add creates the contact if needed and appends the phone. A new contact is
// only stored once its first phone is valid.
func (a *Assistant) add(args []string) (Reply, error) {
	name, phone := args[0], args[1]

	if r, ok := a.book.Find(name); ok {
		if err := r.AddPhone(phone); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Contact updated.", Changed: true}, nil
	}

	r := contact.NewRecord(name)
	if err := r.AddPhone(phone); err != nil {
		return Reply{}, err
	}
	a.book.Add(r)
	return Reply{Text: "Contact added.", Changed: true}, nil
}

func (a *Assistant) change(args []string) (Reply, error) {
	name, oldPhone, newPhone := args[0], args[1], args[2]
	r, err := a.find(name)
	if err != nil {
		return Reply{}, err
	}
	if err := r.EditPhone(oldPhone, newPhone); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Contact %s updated.", name), Changed: true}, nil
}

func (a *Assistant) phone(args []string) (Reply, error) {
	name := args[0]
	r, err := a.find(name)
	if err != nil {
		return Reply{}, err
	}

	phones := r.Phones()
	if len(phones) == 0 {
		return Reply{Text: fmt.Sprintf("%s: No phone", name)}, nil
	}
	parts := make([]string, len(phones))
	for i, p := range phones {
		parts[i] = p.String()
	}
	return Reply{Text: fmt.Sprintf("%s: %s", name, strings.Join(parts, ", "))}, nil
}

func (a *Assistant) removePhone(args []string) (Reply, error) {
	name, phone := args[0], args[1]
	r, err := a.find(name)
	if err != nil {
		return Reply{}, err
	}
	if _, ok := r.FindPhone(phone); !ok {
		return Reply{}, fmt.Errorf("%w: %q", contact.ErrPhoneNotFound, phone)
	}
	r.RemovePhone(phone)
	return Reply{Text: fmt.Sprintf("Phone %s removed from %s.", phone, name), Changed: true}, nil
}

func (a *Assistant) deleteContact(args []string) (Reply, error) {
	name := args[0]
	if _, err := a.find(name); err != nil {
		return Reply{}, err
	}
	a.book.Delete(name)
	return Reply{Text: fmt.Sprintf("Contact %s deleted.", name), Changed: true}, nil
}

func (a *Assistant) all([]string) (Reply, error) {
	if a.book.Len() == 0 {
		return Reply{Text: "No contacts found."}, nil
	}
	return Reply{Text: a.book.String()}, nil
}

func (a *Assistant) addBirthday(args []string) (Reply, error) {
	name, raw := args[0], args[1]
	r, err := a.find(name)
	if err != nil {
		return Reply{}, err
	}
	if err := r.SetBirthday(raw); err != nil {
		return Reply{}, err
	}
	b, _ := r.Birthday()
	return Reply{Text: fmt.Sprintf("Birthday for %s added: %s", name, b), Changed: true}, nil
}

func (a *Assistant) showBirthday(args []string) (Reply, error) {
	name := args[0]
	r, err := a.find(name)
	if err != nil {
		return Reply{}, err
	}
	b, ok := r.Birthday()
	if !ok {
		return Reply{Text: fmt.Sprintf("Contact %s has no birthday set.", name)}, nil
	}
	return Reply{Text: fmt.Sprintf("Birthday %s: %s", name, b)}, nil
}

func (a *Assistant) birthdays([]string) (Reply, error) {
	upcoming := a.book.UpcomingBirthdays(a.now())
	if len(upcoming) == 0 {
		return Reply{Text: "No greetings for next week."}, nil
	}

	var sb strings.Builder
	sb.WriteString("Greetings for next week:")
	for _, g := range upcoming {
		fmt.Fprintf(&sb, "\n%s: %s", g.Name, g.Date)
	}
	return Reply{Text: sb.String()}, nil
}
