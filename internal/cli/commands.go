package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/nandrad-tools/regsuite/internal/compare"
	"github.com/nandrad-tools/regsuite/internal/config"
	"github.com/nandrad-tools/regsuite/internal/discover"
	"github.com/nandrad-tools/regsuite/internal/errors"
	"github.com/nandrad-tools/regsuite/internal/fmu"
	"github.com/nandrad-tools/regsuite/internal/logging"
	"github.com/nandrad-tools/regsuite/internal/output"
	"github.com/nandrad-tools/regsuite/internal/platform"
	"github.com/nandrad-tools/regsuite/internal/refs"
	"github.com/nandrad-tools/regsuite/internal/solver"
	"github.com/nandrad-tools/regsuite/internal/suite"
	"github.com/nandrad-tools/regsuite/internal/tsv"
)

// suiteEnv is the state shared by the commands operating on a test suite.
type suiteEnv struct {
	root       string
	cfg        *config.Config
	platformID string
	log        *zap.SugaredLogger
}

// applyOutputFlags configures the invocation's writer from the command flags.
func applyOutputFlags(c *cli.Context, out *output.Writer) {
	if c.Bool(NoColorsFlag.Name) {
		out.SetColor(false)
	}
	out.SetQuiet(c.Bool(QuietFlag.Name))
}

// loadSuite resolves the suite root, configuration, platform and logger.
func loadSuite(c *cli.Context, out *output.Writer) (*suiteEnv, error) {
	root, err := filepath.Abs(c.String(PathFlag.Name))
	if err != nil {
		return nil, errors.WrapConfig(err, "invalid test suite path")
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, errors.Configf("test suite directory %q does not exist", root)
	}

	cfg, warnings, err := config.Find(root, c.String(ConfigFlag.Name))
	if err != nil {
		return nil, errors.WrapConfig(err, "invalid suite configuration")
	}
	for _, w := range warnings {
		out.Warning("%s", w)
	}

	platformID, err := platform.Resolve(cfg.PlatformID)
	if err != nil {
		return nil, err
	}

	log := logging.New(out.Stderr(), out.Color())
	return &suiteEnv{root: root, cfg: cfg, platformID: platformID, log: log}, nil
}

func (env *suiteEnv) projects(ext string) ([]discover.Project, error) {
	projects, err := discover.Projects(env.root, ext, env.cfg.ExcludeDirs...)
	if err != nil {
		return nil, errors.Wrap(err, "cannot collect projects")
	}
	return projects, nil
}

func cmdRun(c *cli.Context, out *output.Writer) error {
	applyOutputFlags(c, out)

	testInit := c.Bool(TestInitFlag.Name)
	performance := c.Bool(PerformanceFlag.Name)
	if testInit && performance {
		return errors.Config("either use --test-init or --performance, but not both together")
	}

	env, err := loadSuite(c, out)
	if err != nil {
		return err
	}
	defer func() { _ = env.log.Sync() }()

	ext := strings.TrimPrefix(c.String(ExtensionFlag.Name), ".")
	inv := &solver.Invoker{
		Executable: c.String(SolverFlag.Name),
		Args:       env.cfg.SolverArgs,
		TestInit:   testInit,
		Logger:     env.log,
		Stdout:     out.Stdout(),
		Stderr:     out.Stderr(),
	}
	if err := inv.Check(); err != nil {
		return err
	}

	out.SummaryItem("Compiler ID", env.platformID)
	out.SummaryItem("Test suite", env.root)
	out.SummaryItem("Solver", inv.Executable)
	out.SummaryItem("Project file extension", ext)

	projects, err := env.projects(ext)
	if err != nil {
		return err
	}
	out.SummaryItem("Number of projects", fmt.Sprintf("%d", len(projects)))
	out.Println("")

	runner := suite.New(inv, compare.New(env.cfg.Tolerance.Policy()), out, env.log, suite.Options{
		RunAll:     c.Bool(RunAllFlag.Name),
		TestInit:   testInit,
		Iterations: env.cfg.Iterations,
		PlatformID: env.platformID,
	})

	var sum *suite.Summary
	if performance {
		sum, err = runner.RunPerformance(c.Context, projects)
		if err != nil {
			return err
		}
		if err := runner.ReportPerformance(sum, env.root, platform.Host()); err != nil {
			return errors.Wrap(err, "cannot write performance statistics")
		}
	} else {
		sum, err = runner.Run(c.Context, projects)
		if err != nil {
			return err
		}
		runner.Report(sum)
	}

	if !sum.Success() {
		return errors.ErrSuiteFailed
	}
	return nil
}

func cmdFMU(c *cli.Context, out *output.Writer) error {
	applyOutputFlags(c, out)

	binaries, err := filepath.Abs(c.String(BinariesFlag.Name))
	if err != nil {
		return errors.WrapConfig(err, "invalid binaries directory")
	}
	if info, err := os.Stat(binaries); err != nil || !info.IsDir() {
		return errors.Configf("binaries directory %q does not exist", binaries)
	}

	env, err := loadSuite(c, out)
	if err != nil {
		return err
	}
	defer func() { _ = env.log.Sync() }()

	master, err := fmu.MasterSimPath()
	if err != nil {
		return err
	}
	inv := &solver.Invoker{
		Executable: master,
		Logger:     env.log,
		Stdout:     out.Stdout(),
		Stderr:     out.Stderr(),
	}
	if err := inv.Check(); err != nil {
		return err
	}
	gen := &fmu.Generator{BinariesDir: binaries, Logger: env.log}
	if err := gen.Check(); err != nil {
		return err
	}

	out.SummaryItem("Compiler ID", env.platformID)
	out.SummaryItem("Test suite", env.root)
	out.SummaryItem("Binaries directory", binaries)
	out.SummaryItem("MasterSimulator", master)
	out.SummaryItem(fmu.GeneratorName, gen.Executable())

	projects, err := env.projects(fmu.ProjectExt)
	if err != nil {
		return err
	}
	out.SummaryItem("Number of MSIM projects", fmt.Sprintf("%d", len(projects)))
	out.Println("")

	runner := suite.New(inv, compare.New(env.cfg.Tolerance.Policy()), out, env.log, suite.Options{
		RunAll:     c.Bool(RunAllFlag.Name),
		PlatformID: env.platformID,
	}).WithPreparer(gen)

	sum, err := runner.Run(c.Context, projects)
	if err != nil {
		return err
	}
	runner.Report(sum)

	if !sum.Success() {
		return errors.ErrSuiteFailed
	}
	return nil
}

func cmdUpdateRefs(c *cli.Context, out *output.Writer) error {
	applyOutputFlags(c, out)

	env, err := loadSuite(c, out)
	if err != nil {
		return err
	}
	defer func() { _ = env.log.Sync() }()

	projects, err := env.projects(strings.TrimPrefix(c.String(ExtensionFlag.Name), "."))
	if err != nil {
		return err
	}

	dryRun := c.Bool(DryRunFlag.Name)
	if dryRun {
		out.DryRunStart()
	}

	actions, err := refs.Update(projects, env.platformID, dryRun)
	updated := 0
	for _, a := range actions {
		if a.Skipped {
			out.Hint("%s: no computed output, skipped", a.Project.DisplayName())
			continue
		}
		updated++
		out.Println("%s -> %s", a.Project.OutputDir, filepath.Base(a.Dest))
	}
	if err != nil {
		return errors.Wrap(err, "cannot update reference results")
	}

	if dryRun {
		out.DryRunEnd()
		out.Info("%d reference directories would be replaced", updated)
		return nil
	}
	out.Success("%d reference directories replaced", updated)
	return nil
}

func cmdTsv(c *cli.Context, out *output.Writer) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return errors.Configf("usage: regsuite tsv [-o <output>] [-d] <operation> <input.tsv> [arguments...] (operations: %s)",
			strings.Join(tsv.Operations(), ", "))
	}
	op, input, opArgs := args[0], args[1], args[2:]
	if !slices.Contains(tsv.Operations(), op) {
		return errors.Configf("unknown operation %q (valid: %s)", op, strings.Join(tsv.Operations(), ", "))
	}

	if _, err := os.Stat(input); os.IsNotExist(err) {
		return errors.NotFound("input file", input)
	}
	t, err := tsv.Read(input)
	if err != nil {
		return errors.Wrap(err, "error reading input file")
	}

	notes, err := tsv.Apply(t, op, opArgs, tsv.Read)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("operation %s failed", op))
	}
	for _, n := range notes {
		out.Info("%s", n)
	}

	if c.Bool(DoubleFlag.Name) {
		if err := t.ConvertToDouble(); err != nil {
			return errors.Wrap(err, "cannot convert values to numbers")
		}
	}

	outputPath := c.String(OutputFlag.Name)
	if outputPath == "" {
		outputPath = tsv.DefaultOutputPath(input)
	}
	if err := t.Write(outputPath); err != nil {
		return errors.Wrap(err, "error writing output file")
	}
	out.Info("Output written to %s", outputPath)
	return nil
}
