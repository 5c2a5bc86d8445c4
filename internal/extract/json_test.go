package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_BareJSON(t *testing.T) {
	m := Decode(`{"company_name":"Acme","match_score":9}`)
	require.NotEmpty(t, m)
	assert.Equal(t, "Acme", m["company_name"])
	assert.Equal(t, float64(9), m["match_score"])
}

func TestDecode_FencedJSON(t *testing.T) {
	text := "Here is the extracted data:\n```json\n{\"company_name\":\"Acme\",\"role_name\":\"Engineer\",\"match_score\":9}\n```\nLet me know if you need anything else."
	m := Decode(text)
	require.NotEmpty(t, m)
	assert.Equal(t, "Acme", m["company_name"])
	assert.Equal(t, "Engineer", m["role_name"])
	assert.Equal(t, float64(9), m["match_score"])
}

func TestDecode_FencedWithoutTag(t *testing.T) {
	text := "```\n{\"company_name\":\"Acme\"}\n```"
	m := Decode(text)
	require.NotEmpty(t, m)
	assert.Equal(t, "Acme", m["company_name"])
}

func TestDecode_SecondFenceParses(t *testing.T) {
	// First fence holds non-JSON; the salvage keeps trying.
	text := "```\nnot json at all\n```\nand then\n```json\n{\"role_name\":\"Engineer\"}\n```"
	m := Decode(text)
	require.NotEmpty(t, m)
	assert.Equal(t, "Engineer", m["role_name"])
}

func TestDecode_BraceSpanInProse(t *testing.T) {
	text := `Sure! The posting looks like {"company_name":"Acme","match_score":5} based on the page.`
	m := Decode(text)
	require.NotEmpty(t, m)
	assert.Equal(t, "Acme", m["company_name"])
}

func TestDecode_EquivalentToStrictParse(t *testing.T) {
	raw := `{"company_name":"Acme","location":{"exact":"1 Main St","city":"Bangalore"}}`
	bare := Decode(raw)
	fenced := Decode("```json\n" + raw + "\n```")
	assert.Equal(t, bare, fenced)
}

func TestDecode_NoJSONAnywhere(t *testing.T) {
	m := Decode("I could not find any job posting on this page, sorry.")
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestDecode_EmptyInput(t *testing.T) {
	assert.Empty(t, Decode(""))
}

func TestDecode_NullLiteral(t *testing.T) {
	assert.Empty(t, Decode("null"))
}

func TestDecode_TruncatedJSON(t *testing.T) {
	// Unclosed brace: nothing salvageable, must not panic.
	assert.Empty(t, Decode(`{"company_name":"Acme","role_name":`))
}
