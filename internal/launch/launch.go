// Package launch validates workspace launch requests and starts the editor
// as a detached process. Nothing reaches the process starter until every
// check has passed.
package launch

import (
	"strings"

	"codelaunch/internal/catalog"
	"codelaunch/internal/config"
	"codelaunch/internal/errors"
	"codelaunch/internal/log"
	"codelaunch/pkg/types"
)

// Metacharacters may not appear anywhere in a resolved workspace path.
const Metacharacters = ";$&|<>(){}!#"

// User-facing status messages for refused requests.
const (
	MsgInvalidName  = "Invalid workspace filename"
	MsgInvalidType  = "Invalid workspace file type"
	MsgInvalidChars = "Invalid characters in workspace path"
	MsgNoCommand    = "No editor command configured"
)

// Request is one activation: which file, where, with which edition.
type Request struct {
	FileName    string
	Environment types.Environment
	Edition     types.Edition
}

// Plan is a fully validated launch.
type Plan struct {
	Path    string   `json:"path" yaml:"path"`
	Command []string `json:"command" yaml:"command"`
}

// Argv returns the command followed by the workspace path.
func (p Plan) Argv() []string {
	argv := make([]string, 0, len(p.Command)+1)
	argv = append(argv, p.Command...)
	return append(argv, p.Path)
}

// Starter starts argv[0] with the remaining arguments, without a shell, and
// returns once the start call has completed.
type Starter interface {
	Start(argv []string) error
}

// StarterFunc adapts a function to Starter.
type StarterFunc func(argv []string) error

// Start calls f(argv).
func (f StarterFunc) Start(argv []string) error {
	return f(argv)
}

// Gate is the single entry point for starting editor processes.
type Gate struct {
	starter Starter
}

// NewGate returns a gate that starts processes with starter. A nil starter
// selects DetachedStarter.
func NewGate(starter Starter) *Gate {
	if starter == nil {
		starter = DetachedStarter{}
	}
	return &Gate{starter: starter}
}

// Resolve runs the validation pipeline and builds the plan. The first
// failing check wins and is returned as a ValidationError.
func (g *Gate) Resolve(req Request, cfg *config.Config) (Plan, error) {
	name := req.FileName
	if strings.TrimSpace(name) == "" {
		return Plan{}, errors.ErrEmptyName
	}
	if !catalog.IsWorkspaceFile(name) {
		return Plan{}, errors.NewValidationError(MsgInvalidType, name, errors.BadSuffix)
	}
	if !catalog.ValidName(name) {
		return Plan{}, errors.NewValidationError(MsgInvalidName, name, errors.UnsafeName)
	}

	path := WorkspacePath(cfg.Root(req.Environment), name)
	if strings.ContainsAny(path, Metacharacters) {
		return Plan{}, errors.NewValidationError(MsgInvalidChars, path, errors.UnsafePath)
	}

	command := strings.Fields(cfg.Commands.For(req.Environment, req.Edition))
	if len(command) == 0 {
		return Plan{}, errors.NewValidationError(MsgNoCommand, req.Environment.String()+"/"+req.Edition.String(), errors.NoCommand)
	}

	return Plan{Path: path, Command: command}, nil
}

// Launch resolves req and starts the process. Refused requests never reach
// the starter. A failed start is returned as a LaunchError.
func (g *Gate) Launch(req Request, cfg *config.Config) (Plan, error) {
	plan, err := g.Resolve(req, cfg)
	if err != nil {
		log.LogWithError(err).Error("launch refused")
		return Plan{}, err
	}

	argv := plan.Argv()
	logger := log.LogWithFields(
		log.F("environment", req.Environment.String()),
		log.F("edition", req.Edition.String()),
	)
	logger.Infof("Launching: %s", strings.Join(argv, " "))

	if err := g.starter.Start(argv); err != nil {
		launchErr := errors.NewLaunchError(argv, err)
		log.LogWithError(launchErr).Error("launch failed")
		return plan, launchErr
	}
	return plan, nil
}

// WorkspacePath joins root and name with a forward slash. Both Windows and
// the Linux subsystem accept it, and it keeps the virtualized path in the
// form the subsystem expects.
func WorkspacePath(root, name string) string {
	root = strings.TrimRight(root, `/\`)
	if root == "" {
		return "/" + name
	}
	return root + "/" + name
}
