package analyzers

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrPolicyNotFound = errors.New("analyzer policy file not found")
	ErrPolicyParsing  = errors.New("analyzer policy parsing failed")
)

// Policy tunes the analyzer set without code changes: analyzers can be
// disabled by name and the security token list can be extended.
type Policy struct {
	Disabled       []string `yaml:"disabled"`
	SecurityTokens []string `yaml:"security_tokens"`
}

// LoadPolicy reads a yaml policy file. A missing file is not an error in the
// operational sense: callers get an empty policy together with
// ErrPolicyNotFound and should fall back to the default analyzer set.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Policy{}, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to read analyzer policy %s: %w", path, err)
	}

	policy := &Policy{}
	if err := yaml.Unmarshal(data, policy); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPolicyParsing, err)
	}
	return policy, nil
}

// Apply filters the analyzer set according to the policy and wires any extra
// security tokens into the security analyzer. Registration order is
// preserved.
func (p *Policy) Apply(set []Analyzer) []Analyzer {
	disabled := make(map[string]struct{}, len(p.Disabled))
	for _, name := range p.Disabled {
		disabled[name] = struct{}{}
	}

	kept := make([]Analyzer, 0, len(set))
	for _, a := range set {
		if _, off := disabled[a.Name()]; off {
			continue
		}
		if sec, ok := a.(*Security); ok && len(p.SecurityTokens) > 0 {
			sec.ExtraTokens = append(sec.ExtraTokens, p.SecurityTokens...)
		}
		kept = append(kept, a)
	}
	return kept
}
