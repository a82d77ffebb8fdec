// Package fmu prepares FMU co-simulation projects: it exports every NANDRAD
// project next to a MasterSim project as an FMU before the master runs.
package fmu

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/nandrad-tools/regsuite/internal/discover"
	"github.com/nandrad-tools/regsuite/internal/errors"
	"github.com/nandrad-tools/regsuite/internal/solver"
)

const (
	// ProjectExt is the extension of co-simulation projects.
	ProjectExt = "msim"
	// SourceExt is the extension of the projects converted to FMUs.
	SourceExt = "nandrad"
	// GeneratorName is the FMU generator executable inside the binaries directory.
	GeneratorName = "NandradFMUGenerator"
	// MasterSimEnv names the environment variable holding the co-simulation master.
	MasterSimEnv = "MASTERSIM_PATH"
)

// MasterSimPath returns the co-simulation master executable from the
// environment.
func MasterSimPath() (string, error) {
	path, ok := os.LookupEnv(MasterSimEnv)
	if !ok || path == "" {
		return "", errors.Environmentf("environment variable %s missing", MasterSimEnv)
	}
	return path, nil
}

// Generator runs the FMU generator for the NANDRAD files of a project.
type Generator struct {
	BinariesDir string
	Logger      *zap.SugaredLogger
	// Stdout and Stderr receive generator output when Verbose is set.
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
}

// Executable returns the path of the generator executable.
func (g *Generator) Executable() string {
	name := GeneratorName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(g.BinariesDir, name)
}

// Check verifies that the generator executable exists in BinariesDir.
func (g *Generator) Check() error {
	exe := g.Executable()
	info, err := os.Stat(exe)
	if err != nil || info.IsDir() {
		return errors.NotFound("FMU generator", exe)
	}
	return nil
}

// Prepare generates an FMU for each NANDRAD file in the project's directory.
// It returns the FMUs whose generation failed. The error is non-nil only if
// the generator could not be started.
func (g *Generator) Prepare(ctx context.Context, p discover.Project) ([]string, error) {
	log := g.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	dir := filepath.Dir(p.Path)
	sources, err := discover.Siblings(dir, SourceExt)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("cannot list %s files in %s", SourceExt, dir))
	}

	var failed []string
	for _, src := range sources {
		stem := strings.TrimSuffix(filepath.Base(src), "."+SourceExt)
		fmuPath := filepath.Join(dir, stem+".fmu")
		log.Infow("generating FMU", "fmu", fmuPath)

		argv := []string{g.Executable(), "--generate=" + stem, src}
		cmd := solver.NewCommand(ctx, argv, g.Verbose, g.Stdout, g.Stderr)
		cmd.Dir = g.BinariesDir

		code, err := solver.ExitStatus(cmd.Run())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return failed, ctxErr
		}
		if err != nil {
			return failed, errors.WrapEnvironment(err, fmt.Sprintf("cannot start %s", g.Executable()))
		}
		if code != 0 {
			log.Debugw("FMU generation failed", "fmu", fmuPath, "exit_code", code)
			failed = append(failed, fmuPath)
		}
	}
	return failed, nil
}
