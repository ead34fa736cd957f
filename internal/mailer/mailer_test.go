package mailer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsavic/leadflow/internal/types"
)

// recordingTransport captures sends instead of dialing a relay.
type recordingTransport struct {
	calls int
	addr  string
	from  string
	to    []string
	msg   string
	err   error
}

func (r *recordingTransport) SendMail(addr, from string, to []string, msg []byte) error {
	r.calls++
	r.addr = addr
	r.from = from
	r.to = to
	r.msg = string(msg)
	return r.err
}

func testConfig() Config {
	return Config{
		Addr:      "mailhog:1025",
		FromEmail: "sales@crm.local",
		FromName:  "Sales Team",
	}
}

func enrichedLead(email, body string) types.EnrichedLead {
	return types.EnrichedLead{
		Lead: types.Lead{
			"name":    "Ana Kovac",
			"email":   email,
			"company": "Acme",
		},
		PersonalizedEmail: body,
	}
}

func TestSendOutreach_Success(t *testing.T) {
	transport := &recordingTransport{}
	m := NewWithTransport(testConfig(), transport)

	ok := m.SendOutreach(enrichedLead("ana@acme.io", "Quick note about your growth."))

	require.True(t, ok)
	assert.Equal(t, 1, transport.calls)
	assert.Equal(t, "mailhog:1025", transport.addr)
	assert.Equal(t, "sales@crm.local", transport.from)
	assert.Equal(t, []string{"ana@acme.io"}, transport.to)

	// Message structure: headers, both alternatives, footer.
	assert.Contains(t, transport.msg, "From: Sales Team <sales@crm.local>\r\n")
	assert.Contains(t, transport.msg, "To: Ana Kovac <ana@acme.io>\r\n")
	assert.Contains(t, transport.msg, "Subject: Quick question about Acme's growth\r\n")
	assert.Contains(t, transport.msg, "multipart/alternative")
	assert.Contains(t, transport.msg, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, transport.msg, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, transport.msg, "Quick note about your growth.")
	assert.Contains(t, transport.msg, "This is an automated outreach email from AI Sales CRM")
}

func TestSendOutreach_MissingEmail_NoNetworkCall(t *testing.T) {
	transport := &recordingTransport{}
	m := NewWithTransport(testConfig(), transport)

	ok := m.SendOutreach(enrichedLead("", "body"))

	assert.False(t, ok)
	assert.Zero(t, transport.calls)
}

func TestSendOutreach_MissingBody_NoNetworkCall(t *testing.T) {
	transport := &recordingTransport{}
	m := NewWithTransport(testConfig(), transport)

	ok := m.SendOutreach(enrichedLead("ana@acme.io", ""))

	assert.False(t, ok)
	assert.Zero(t, transport.calls)
}

func TestSendOutreach_MalformedAddress_NoNetworkCall(t *testing.T) {
	transport := &recordingTransport{}
	m := NewWithTransport(testConfig(), transport)

	for _, addr := range []string{"not-an-email", "a@b", "@x.io", "two@@x.io"} {
		ok := m.SendOutreach(enrichedLead(addr, "body"))
		assert.False(t, ok, "address %q", addr)
	}
	assert.Zero(t, transport.calls)
}

func TestSendOutreach_TransportErrorMapsToFalse(t *testing.T) {
	transport := &recordingTransport{err: errors.New("connection refused")}
	m := NewWithTransport(testConfig(), transport)

	ok := m.SendOutreach(enrichedLead("ana@acme.io", "body"))

	assert.False(t, ok)
	assert.Equal(t, 1, transport.calls)
}

func TestSendOutreach_DefaultsForNameAndCompany(t *testing.T) {
	transport := &recordingTransport{}
	m := NewWithTransport(testConfig(), transport)

	ok := m.SendOutreach(types.EnrichedLead{
		Lead:              types.Lead{"email": "x@y.io"},
		PersonalizedEmail: "body",
	})

	require.True(t, ok)
	assert.Contains(t, transport.msg, "To: there <x@y.io>")
	assert.Contains(t, transport.msg, "Subject: Quick question about your company's growth")
}

func TestSendOutreach_QuotesHostileDisplayNames(t *testing.T) {
	transport := &recordingTransport{}
	m := NewWithTransport(testConfig(), transport)

	ok := m.SendOutreach(types.EnrichedLead{
		Lead: types.Lead{
			"name":    "Kovac, Ana <ana@elsewhere.io>",
			"email":   "ana@acme.io",
			"company": "Acme",
		},
		PersonalizedEmail: "body",
	})

	require.True(t, ok)
	// The name is quoted as a single phrase; the embedded address cannot
	// masquerade as the recipient.
	assert.Contains(t, transport.msg, "To: \"Kovac, Ana <ana@elsewhere.io>\" <ana@acme.io>\r\n")
	assert.NotContains(t, transport.msg, "To: Kovac, Ana <ana@elsewhere.io>")
	assert.Equal(t, []string{"ana@acme.io"}, transport.to)
}

func TestSendBatch(t *testing.T) {
	transport := &recordingTransport{}
	m := NewWithTransport(testConfig(), transport)

	leads := []types.EnrichedLead{
		enrichedLead("a@x.io", "body"),
		enrichedLead("", "body"),
		enrichedLead("b@x.io", "body"),
	}

	stats := m.SendBatch(leads)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, "66.7%", stats.SuccessRate)
}

func TestSendBatch_Empty(t *testing.T) {
	m := NewWithTransport(testConfig(), &recordingTransport{})

	stats := m.SendBatch(nil)

	assert.Equal(t, types.BatchStats{Total: 0, Sent: 0, Failed: 0, SuccessRate: "0%"}, stats)
}
