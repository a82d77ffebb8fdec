package cli

import "github.com/urfave/cli/v2"

// EnvVarPrefix prefixes the environment variables backing CLI flags.
const EnvVarPrefix = "REGSUITE"

func prefixEnvVar(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	PathFlag = &cli.StringFlag{
		Name:     "path",
		Aliases:  []string{"p"},
		Required: true,
		EnvVars:  prefixEnvVar("PATH"),
		Usage:    "Path to the test suite root directory",
	}
	SolverFlag = &cli.StringFlag{
		Name:     "solver",
		Aliases:  []string{"s"},
		Required: true,
		EnvVars:  prefixEnvVar("SOLVER"),
		Usage:    "Path to the solver executable",
	}
	ExtensionFlag = &cli.StringFlag{
		Name:     "extension",
		Aliases:  []string{"e"},
		Required: true,
		EnvVars:  prefixEnvVar("EXTENSION"),
		Usage:    "Project file extension (e.g. 'nandrad')",
	}
	BinariesFlag = &cli.StringFlag{
		Name:     "binaries",
		Aliases:  []string{"b"},
		Required: true,
		EnvVars:  prefixEnvVar("BINARIES"),
		Usage:    "Directory holding the FMU generator and solver binaries",
	}
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		EnvVars: prefixEnvVar("CONFIG"),
		Usage:   "Suite configuration file (default: <path>/regsuite.yaml when present)",
	}
	TestInitFlag = &cli.BoolFlag{
		Name:  "test-init",
		Usage: "Run the solver in initialization mode only; implies --run-all and skips result checks",
	}
	PerformanceFlag = &cli.BoolFlag{
		Name:  "performance",
		Usage: "Run all projects repeatedly and record wall clock times",
	}
	RunAllFlag = &cli.BoolFlag{
		Name:  "run-all",
		Usage: "Also run projects without reference results (their results are not checked)",
	}
	NoColorsFlag = &cli.BoolFlag{
		Name:    "no-colors",
		EnvVars: prefixEnvVar("NO_COLOR"),
		Usage:   "Disable colored console output",
	}
	QuietFlag = &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "Minimal output (failures and the final verdict only)",
	}
	DryRunFlag = &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Show which reference directories would be replaced without writing",
	}
	OutputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file (default: <input>_out.tsv)",
	}
	DoubleFlag = &cli.BoolFlag{
		Name:    "double",
		Aliases: []string{"d"},
		Usage:   "Convert all values to floating point numbers before writing",
	}
)

var runFlags = []cli.Flag{
	PathFlag,
	SolverFlag,
	ExtensionFlag,
	TestInitFlag,
	PerformanceFlag,
	RunAllFlag,
	NoColorsFlag,
	QuietFlag,
	ConfigFlag,
}

var fmuFlags = []cli.Flag{
	PathFlag,
	BinariesFlag,
	RunAllFlag,
	NoColorsFlag,
	QuietFlag,
	ConfigFlag,
}

var updateRefsFlags = []cli.Flag{
	PathFlag,
	ExtensionFlag,
	DryRunFlag,
	NoColorsFlag,
	QuietFlag,
	ConfigFlag,
}

var tsvFlags = []cli.Flag{
	OutputFlag,
	DoubleFlag,
}
