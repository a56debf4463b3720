package common

import (
	"errors"
	"sort"
	"strings"

	"github.com/absolute8511/redcon"
)

var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrBatchTooLarge  = errors.New("batch too large")
)

type CommandFunc func(redcon.Conn, redcon.Command)

// CmdRouter maps lower cased command names to handlers. All the geohash
// commands are read only so there is a single table.
type CmdRouter struct {
	cmds map[string]CommandFunc
}

func NewCmdRouter() *CmdRouter {
	return &CmdRouter{
		cmds: make(map[string]CommandFunc),
	}
}

// Register returns false if name was already registered.
func (r *CmdRouter) Register(name string, f CommandFunc) bool {
	name = strings.ToLower(name)
	if _, ok := r.cmds[name]; ok {
		return false
	}
	r.cmds[name] = f
	return true
}

func (r *CmdRouter) GetCmdHandler(name string) (CommandFunc, bool) {
	v, ok := r.cmds[strings.ToLower(name)]
	return v, ok
}

// Names returns the registered commands in sorted order.
func (r *CmdRouter) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for k := range r.cmds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type StringArray []string

func (a *StringArray) Set(s string) error {
	*a = append(*a, s)
	return nil
}

func (a *StringArray) String() string {
	return strings.Join(*a, ",")
}
