package user_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	j "github.com/goccy/go-json"

	"github.com/reoring/userconf"
	"github.com/reoring/userconf/user"
)

const roleMsg = "Invalid role (expected intern|mentor|admin)"

func TestParseUserConfig_Scenarios(t *testing.T) {
	r := user.ParseUserConfig(`{"id":"u1","email":"a@b.com","role":"intern"}`)
	u, ok := r.Value()
	if !ok {
		t.Fatalf("unexpected failure: %s", r.Error())
	}
	if u != (user.User{ID: "u1", Email: "a@b.com", Role: user.RoleIntern}) {
		t.Fatalf("got %+v", u)
	}

	if got := user.ParseUserConfig(`{"id":"u2","email":"a@b.com","role":"boss"}`).Error(); got != roleMsg {
		t.Fatalf("got %q", got)
	}

	r = user.ParseUserConfig(`{"id":123,"email":"a@b.com","role":"intern"`)
	iss, _ := r.Issue()
	if iss.Kind != userconf.KindSyntax || iss.Message != "Invalid JSON" {
		t.Fatalf("truncated input must be a syntax error, got %+v", iss)
	}

	r = user.ParseUserConfig(`{"id":123,"email":"a@b.com","role":"intern"}`)
	iss, _ = r.Issue()
	if iss.Kind != userconf.KindShape || iss.Message != "Invalid type for id (expected string)" {
		t.Fatalf("got %+v", iss)
	}
}

func TestParseUserConfig_ShapeDiagnostics(t *testing.T) {
	cases := []struct {
		in   string
		want string
		code string
	}{
		{`null`, "must be an object and not null", userconf.CodeNotObject},
		{`[]`, "must be an object, not an array/primitive", userconf.CodeNotObject},
		{`"u1"`, "must be an object, not an array/primitive", userconf.CodeNotObject},
		{`42`, "must be an object, not an array/primitive", userconf.CodeNotObject},
		{`{}`, "Missing field: id", userconf.CodeRequired},
		{`{"id":"u1"}`, "Missing field: email", userconf.CodeRequired},
		{`{"id":"u1","email":"a@b.com"}`, "Missing field: role", userconf.CodeRequired},
		{`{"id":null,"email":"a@b.com","role":"admin"}`, "Invalid type for id (expected string)", userconf.CodeInvalidType},
		{`{"id":"u1","email":["a@b.com"],"role":"admin"}`, "Invalid type for email (expected string)", userconf.CodeInvalidType},
		{`{"id":"u1","email":"a@b.com","role":1}`, roleMsg, userconf.CodeInvalidEnum},
		{`{"id":"u1","email":"a@b.com","role":"Admin"}`, roleMsg, userconf.CodeInvalidEnum},
		{`{"id":"u1","email":"a@b.com","role":null}`, roleMsg, userconf.CodeInvalidEnum},
	}
	for _, c := range cases {
		iss, failed := user.ParseUserConfig(c.in).Issue()
		if !failed {
			t.Fatalf("%s: expected failure", c.in)
		}
		if iss.Message != c.want || iss.Code != c.code {
			t.Fatalf("%s: got %q (%s), want %q (%s)", c.in, iss.Message, iss.Code, c.want, c.code)
		}
	}
}

func TestParseUserConfig_FailFastFieldOrder(t *testing.T) {
	// every field is wrong; id is reported first, then email, then role
	if got := user.ParseUserConfig(`{"role":"boss","email":7,"id":false}`).Error(); got != "Invalid type for id (expected string)" {
		t.Fatalf("got %q", got)
	}
	if got := user.ParseUserConfig(`{"role":"boss","email":7}`).Error(); got != "Missing field: id" {
		t.Fatalf("got %q", got)
	}
	if got := user.ParseUserConfig(`{"role":"boss","email":7,"id":""}`).Error(); got != "Invalid type for email (expected string)" {
		t.Fatalf("got %q", got)
	}
}

func TestParseUserConfig_NoCoercion(t *testing.T) {
	u, ok := user.ParseUserConfig(`{"id":"","email":"  X@Y  ","role":"mentor","extra":1}`).Value()
	if !ok {
		t.Fatalf("expected success")
	}
	if u.ID != "" || u.Email != "  X@Y  " || u.Role != user.RoleMentor {
		t.Fatalf("values must be taken verbatim, got %+v", u)
	}
}

func TestParseUserConfig_RoundTrip(t *testing.T) {
	for _, role := range user.Roles {
		in := fmt.Sprintf(`{"id":"u-%s","email":"%s@example.com","role":"%s"}`, role, role, role)
		u, ok := user.ParseUserConfig(in).Value()
		if !ok {
			t.Fatalf("%s: expected success", in)
		}
		b, err := j.Marshal(u)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		again, ok := user.ParseUserConfig(string(b)).Value()
		if !ok || again != u {
			t.Fatalf("round trip changed the value: %+v -> %+v", u, again)
		}
	}
}

func TestParseUsersConfig_Scenarios(t *testing.T) {
	r := user.ParseUsersConfig(`[{"id":"u1","email":"a@b.com","role":"intern"},{"id":"u2","email":"c@d.com","role":"mentor"}]`)
	us, ok := r.Value()
	if !ok {
		t.Fatalf("unexpected failure: %s", r.Error())
	}
	want := []user.User{
		{ID: "u1", Email: "a@b.com", Role: user.RoleIntern},
		{ID: "u2", Email: "c@d.com", Role: user.RoleMentor},
	}
	if len(us) != len(want) || us[0] != want[0] || us[1] != want[1] {
		t.Fatalf("got %+v", us)
	}

	cases := []struct {
		in   string
		want string
	}{
		{`[{"id":"u1","email":"a@b.com","role":"intern"},{"id":"u2","email":"c@d.com","role":"me"}]`, "At index 1: " + roleMsg},
		{`[{"id":"u1","email":"a@b.com","role":"boss"}]`, "At index 0: " + roleMsg},
		{`["HELLOOOO"]`, "At index 0: must be an object, not an array/primitive"},
		{`[null]`, "At index 0: must be an object and not null"},
		{`[[]]`, "At index 0: must be an object, not an array/primitive"},
		{`[{"email":"a@b.com","role":"intern"}]`, "At index 0: Missing field: id"},
		{`[{"id":"u1","email":"a@b.com","role":"intern"}`, "Invalid JSON"},
		{`{"id":"u1","email":"a@b.com","role":"intern"}`, "expected an array of User"},
		{`null`, "expected an array of User"},
	}
	for _, c := range cases {
		if got := user.ParseUsersConfig(c.in).Error(); got != c.want {
			t.Fatalf("%s: got %q want %q", c.in, got, c.want)
		}
	}
}

func TestParseUsersConfig_IndexTagging(t *testing.T) {
	valid := `{"id":"u","email":"e","role":"admin"}`
	for k := 0; k < 12; k++ {
		elems := make([]string, 15)
		for i := range elems {
			elems[i] = valid
		}
		elems[k] = `{"id":"u","email":"e"}`
		elems[14] = `{}`
		iss, failed := user.ParseUsersConfig("[" + strings.Join(elems, ",") + "]").Issue()
		if !failed {
			t.Fatalf("k=%d: expected failure", k)
		}
		want := fmt.Sprintf("At index %d: Missing field: role", k)
		if iss.Message != want || iss.Index != k || iss.Path != fmt.Sprintf("/%d/role", k) {
			t.Fatalf("k=%d: got %+v", k, iss)
		}
	}
}

func TestParseUsersConfig_PreservesLengthAndOrder(t *testing.T) {
	var parts []string
	for i := 0; i < 50; i++ {
		parts = append(parts, fmt.Sprintf(`{"id":"u%d","email":"dup@x","role":"%s"}`, i, user.Roles[i%3]))
	}
	us, ok := user.ParseUsersConfig("[" + strings.Join(parts, ",") + "]").Value()
	if !ok || len(us) != 50 {
		t.Fatalf("ok=%v len=%d", ok, len(us))
	}
	for i, u := range us {
		if u.ID != fmt.Sprintf("u%d", i) || u.Role != user.Roles[i%3] {
			t.Fatalf("element %d: %+v", i, u)
		}
	}

	us, ok = user.ParseUsersConfig(`[]`).Value()
	if !ok || len(us) != 0 {
		t.Fatalf("empty list: ok=%v len=%d", ok, len(us))
	}
}

// TestParse_GrammarEdges pins the syntax stage of every built-in driver to
// the JSON grammar: near-miss literals and numbers fail as syntax, valid but
// unusual numbers reach the shape stage.
func TestParse_GrammarEdges(t *testing.T) {
	valid := `{"id":"u1","email":"a@b.com","role":"intern"`
	cases := []struct {
		in     string
		list   bool
		syntax bool
		want   string
	}{
		{in: `nul`, syntax: true},
		{in: `tru`, syntax: true},
		{in: "{\"id\":\"u\t1\",\"email\":\"a@b.com\",\"role\":\"intern\"}", syntax: true},
		{in: "{\"id\":\"u\n1\",\"email\":\"a@b.com\",\"role\":\"intern\"}", syntax: true},
		{in: "[" + valid + `,"n":01}]`, list: true, syntax: true},
		{in: `{"id":-01,"email":"a@b.com","role":"intern"}`, syntax: true},
		{in: valid + `,"n":1e400}`, want: ""},
		{in: "[" + valid + `,"n":1E+400}]`, list: true, want: ""},
		{in: `{"id":1e400,"email":"a@b.com","role":"intern"}`, want: "Invalid type for id (expected string)"},
		{in: "{\"id\":\"u\\t1\",\"email\":\"a@b.com\",\"role\":\"intern\"}", want: ""},
	}
	for _, name := range userconf.DriverNames() {
		d, _ := userconf.DriverByName(name)
		opt := userconf.ParseOpt{Driver: d}
		for _, c := range cases {
			var iss userconf.Issue
			var failed bool
			if c.list {
				iss, failed = user.ParseUsersConfig(c.in, opt).Issue()
			} else {
				iss, failed = user.ParseUserConfig(c.in, opt).Issue()
			}
			switch {
			case c.syntax:
				if !failed || iss.Kind != userconf.KindSyntax || iss.Message != "Invalid JSON" {
					t.Fatalf("%s: %q: want syntax failure, got failed=%v %+v", name, c.in, failed, iss)
				}
			case c.want == "":
				if failed {
					t.Fatalf("%s: %q: unexpected failure %q", name, c.in, iss.Message)
				}
			default:
				if iss.Message != c.want {
					t.Fatalf("%s: %q: got %q want %q", name, c.in, iss.Message, c.want)
				}
			}
		}
	}
}

func TestParse_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := fmt.Sprintf(`[{"id":"u%d","email":"a@b.com","role":"intern"},{"id":"x","email":"c@d.com","role":"me"}]`, i)
			if got := user.ParseUsersConfig(in).Error(); got != "At index 1: "+roleMsg {
				errs <- got
			}
			if _, ok := user.ParseUserConfig(fmt.Sprintf(`{"id":"u%d","email":"e","role":"admin"}`, i)).Value(); !ok {
				errs <- "single user failed"
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatalf("concurrent parse: %s", e)
	}
}

func TestPredicates(t *testing.T) {
	for _, r := range user.Roles {
		if !user.IsRole(string(r)) {
			t.Fatalf("IsRole(%q)=false", r)
		}
	}
	if user.IsRole("boss") || user.IsRole(user.RoleAdmin) || user.IsRole(nil) {
		t.Fatalf("IsRole accepts only strings naming a role")
	}
	if !user.IsUser(map[string]any{"id": "a", "email": "b", "role": "admin"}) {
		t.Fatalf("IsUser rejected a valid user")
	}
	if user.IsUser([]any{}) || user.IsUser(map[string]any{"id": "a", "email": "b"}) {
		t.Fatalf("IsUser accepted an invalid value")
	}
}
