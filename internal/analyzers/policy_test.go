package analyzers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPolicy(t *testing.T) {
	path := writePolicyFile(t, `
disabled:
  - complexity-agent
security_tokens:
  - pickle.loads
`)

	policy, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"complexity-agent"}, policy.Disabled)
	assert.Equal(t, []string{"pickle.loads"}, policy.SecurityTokens)
}

func TestLoadPolicyNotFound(t *testing.T) {
	policy, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, ErrPolicyNotFound)
	assert.NotNil(t, policy)
}

func TestLoadPolicyInvalidYAML(t *testing.T) {
	path := writePolicyFile(t, "disabled: [unclosed")

	_, err := LoadPolicy(path)
	require.ErrorIs(t, err, ErrPolicyParsing)
}

func TestPolicyApply(t *testing.T) {
	policy := &Policy{
		Disabled:       []string{"debug-artifact-agent", "testing-agent"},
		SecurityTokens: []string{"dangerous_call("},
	}

	kept := policy.Apply(DefaultSet())
	assert.Equal(t, []string{"complexity-agent", "security-agent"}, Names(kept))

	var sec *Security
	for _, a := range kept {
		if s, ok := a.(*Security); ok {
			sec = s
		}
	}
	require.NotNil(t, sec)
	assert.Contains(t, sec.ExtraTokens, "dangerous_call(")
}

func TestPolicyApplyEmpty(t *testing.T) {
	kept := (&Policy{}).Apply(DefaultSet())
	assert.Len(t, kept, 4)
}
