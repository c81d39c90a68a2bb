package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	j "github.com/goccy/go-json"

	"github.com/reoring/userconf/internal/config"
	"github.com/reoring/userconf/internal/logging"
	"github.com/reoring/userconf/user"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "check":
		return checkCmd(args[1:], stdin, stdout, stderr)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	case "demo":
		return demoCmd(stdout, stderr)
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "userconf CLI\n\nUsage:\n  userconf check [-list] [-config file.yaml] [-driver name] [-max-depth n] [-max-bytes n] [-strict-keys] [file|-]\n  userconf schema [-list]\n  userconf demo\n\nExit status: 0 valid, 1 invalid, 2 usage or I/O error.")
}

func checkCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		list       bool
		cfgPath    string
		driver     string
		maxDepth   int
		maxBytes   int64
		strictKeys bool
	)
	fs.BoolVar(&list, "list", false, "expect an array of users")
	fs.StringVar(&cfgPath, "config", "", "YAML config file")
	fs.StringVar(&driver, "driver", "", "JSON driver (encoding/json)")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 = off, default 64)")
	fs.Int64Var(&maxBytes, "max-bytes", 0, "maximum input size in bytes (0 = off)")
	fs.BoolVar(&strictKeys, "strict-keys", false, "reject duplicate object keys")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "userconf: %v\n", err)
		return exitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			cfg.Driver = driver
		case "max-depth":
			cfg.MaxDepth = maxDepth
		case "max-bytes":
			cfg.MaxBytes = maxBytes
		case "strict-keys":
			cfg.StrictKeys = strictKeys
		}
	})
	opt, err := cfg.ParseOpt()
	if err != nil {
		fmt.Fprintf(stderr, "userconf: %v\n", err)
		return exitUsage
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		FilePath:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "userconf: logging: %v\n", err)
		return exitUsage
	}
	defer func() { _ = closeLog() }()

	name := fs.Arg(0)
	input, err := readInput(name, stdin)
	if err != nil {
		logger.Error("read input failed", slog.String("file", name), slog.Any("error", err))
		fmt.Fprintf(stderr, "userconf: %v\n", err)
		return exitUsage
	}
	logger.Debug("checking input",
		slog.String("file", name),
		slog.Int("bytes", len(input)),
		slog.String("driver", opt.Driver.Name()),
		slog.Bool("list", list))

	var (
		out   []byte
		valid bool
	)
	if list {
		r := user.ParseUsersConfig(input, opt)
		valid = r.OK()
		out, err = j.Marshal(r)
		if iss, failed := r.Issue(); failed {
			logger.Info("users config rejected", slog.String("kind", iss.Kind.String()), slog.String("code", iss.Code), slog.String("path", iss.Path))
		}
	} else {
		r := user.ParseUserConfig(input, opt)
		valid = r.OK()
		out, err = j.Marshal(r)
		if iss, failed := r.Issue(); failed {
			logger.Info("user config rejected", slog.String("kind", iss.Kind.String()), slog.String("code", iss.Code), slog.String("path", iss.Path))
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "userconf: encode result: %v\n", err)
		return exitUsage
	}
	fmt.Fprintln(stdout, string(out))
	if !valid {
		return exitInvalid
	}
	return exitOK
}

func readInput(name string, stdin io.Reader) (string, error) {
	if name == "" || name == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(name)
	return string(b), err
}

func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var list bool
	fs.BoolVar(&list, "list", false, "emit the schema for an array of users")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	s := user.JSONSchema()
	if list {
		s = user.ListJSONSchema()
	}
	out, err := j.MarshalIndent(s, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "userconf: encode schema: %v\n", err)
		return exitUsage
	}
	fmt.Fprintln(stdout, string(out))
	return exitOK
}
