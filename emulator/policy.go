package emulator

import (
	"strings"
)

// ResetPolicy selects the state cleared before each run.
// The PC and running flag are always reset.
type ResetPolicy int

const (
	RESET_NONE      = ResetPolicy(0)      // Retain memory, cache, and registers.
	RESET_MEMORY    = ResetPolicy(1 << 0) // Zero the memory bus.
	RESET_CACHE     = ResetPolicy(1 << 1) // Flush and disable the cache.
	RESET_REGISTERS = ResetPolicy(1 << 2) // Zero the register bank.
	RESET_ALL       = RESET_MEMORY | RESET_CACHE | RESET_REGISTERS
)

var policyMap = map[string]ResetPolicy{
	"none":      RESET_NONE,
	"memory":    RESET_MEMORY,
	"cache":     RESET_CACHE,
	"registers": RESET_REGISTERS,
	"all":       RESET_ALL,
}

// ParseResetPolicy parses a comma separated list of policy names,
// such as "memory,cache".
func ParseResetPolicy(text string) (policy ResetPolicy, err error) {
	for _, word := range strings.Split(text, ",") {
		word = strings.TrimSpace(strings.ToLower(word))
		if len(word) == 0 {
			continue
		}
		bits, ok := policyMap[word]
		if !ok {
			err = ErrResetPolicy
			return
		}
		policy |= bits
	}

	return
}

// String returns the comma separated policy names.
func (policy ResetPolicy) String() string {
	switch policy {
	case RESET_NONE:
		return "none"
	case RESET_ALL:
		return "all"
	}

	var names []string
	for _, name := range []string{"memory", "cache", "registers"} {
		if policy&policyMap[name] != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}
