package main

import (
	"fmt"
	"io"

	j "github.com/goccy/go-json"

	"github.com/reoring/userconf/user"
)

var userDemoInputs = []string{
	`{"id":"u1","email":"a@b.com","role":"intern"}`,
	`{"id":"u2","email":"a@b.com","role":"boss"}`,
	`{"id":123,"email":"a@b.com","role":"intern"`,
	`{"id":123,"email":"a@b.com","role":"intern"}`,
}

var usersDemoInputs = []string{
	`[{"id":"u1","email":"a@b.com","role":"intern"},{"id":"u2","email":"c@d.com","role":"mentor"}]`,
	`[{"id":"u1","email":"a@b.com","role":"intern"},{"id":"u2","email":"c@d.com","role":"me"}]`,
	`[{"id":"u1","email":"a@b.com","role":"boss"}]`,
	`["HELLOOOO"]`,
	`[{"email":"a@b.com","role":"intern"}]`,
	`[{"id":"u1","email":"a@b.com","role":"intern"}`,
	`{"id":"u1","email":"a@b.com","role":"intern"}`,
}

// demoCmd prints each sample input next to its outcome.
func demoCmd(stdout, stderr io.Writer) int {
	for _, in := range userDemoInputs {
		if err := printOutcome(stdout, "user ", in, user.ParseUserConfig(in)); err != nil {
			fmt.Fprintf(stderr, "userconf: %v\n", err)
			return exitUsage
		}
	}
	for _, in := range usersDemoInputs {
		if err := printOutcome(stdout, "users", in, user.ParseUsersConfig(in)); err != nil {
			fmt.Fprintf(stderr, "userconf: %v\n", err)
			return exitUsage
		}
	}
	return exitOK
}

func printOutcome(w io.Writer, label, input string, result any) error {
	out, err := j.Marshal(result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s %s\n      => %s\n", label, input, out)
	return err
}
