package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/realty-intake-service/internal/chatbot"
	"github.com/m04kA/realty-intake-service/internal/domain"
)

type fakeClient struct {
	leads    []domain.LeadInput
	bookings []domain.BookingInput
	failures int
}

func (f *fakeClient) CreateLead(_ context.Context, in domain.LeadInput) (string, error) {
	if f.failures > 0 {
		f.failures--
		return "", errors.New("connection refused")
	}
	f.leads = append(f.leads, in)
	return "lead_001", nil
}

func (f *fakeClient) CreateBooking(_ context.Context, in domain.BookingInput) (string, error) {
	f.bookings = append(f.bookings, in)
	return "booking_001", nil
}

func runChat(t *testing.T, client *fakeClient, lines ...string) string {
	t.Helper()
	script, err := chatbot.DefaultScript()
	require.NoError(t, err)

	var out bytes.Buffer
	c := newChat(chatbot.NewEngine(script, chatbot.WithTypingDelay(0)), client,
		strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	c.clock = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestChat_LeadFlow(t *testing.T) {
	client := &fakeClient{}
	out := runChat(t, client,
		"1",           // Buying a Home
		"$500K - $1M", // вариант можно ввести текстом
		"Ana", "ana@x.io", "",
		"3", // End Chat
		"/quit",
	)

	require.Len(t, client.leads, 1)
	lead := client.leads[0]
	assert.Equal(t, "Ana", lead.Name)
	assert.Equal(t, "ana@x.io", lead.Email)
	assert.Equal(t, "$500K - $1M", lead.Interest)
	// приветствие, выбор, вопрос, выбор, просьба оставить контакты
	assert.Len(t, lead.ConversationHistory, 5)

	assert.Contains(t, out, "Thank you, Ana!")
	assert.Contains(t, out, "Sarah will contact you within 24 hours.")
	assert.Contains(t, out, "Thanks for chatting!")
}

func TestChat_FreeTextGoesToLeadCapture(t *testing.T) {
	client := &fakeClient{}
	runChat(t, client, "Do you handle rentals?", "Bo", "bo@x.io", "555-0100")

	require.Len(t, client.leads, 1)
	assert.Equal(t, domain.DefaultInterest, client.leads[0].Interest)
	assert.Equal(t, "555-0100", client.leads[0].Phone)
}

func TestChat_ValidationKeepsFormOpen(t *testing.T) {
	client := &fakeClient{}
	out := runChat(t, client, "1", "1", "", "", "", "Ana", "ana@x.io", "")

	assert.Contains(t, out, "Please fill in your name and email")
	require.Len(t, client.leads, 1)
	assert.Equal(t, "Ana", client.leads[0].Name)
}

func TestChat_RetryAfterFailure(t *testing.T) {
	client := &fakeClient{failures: 1}
	out := runChat(t, client,
		"2", "1", "Ana", "ana@x.io", "",
		"", "", "", // повторная отправка с сохранённым черновиком
	)

	assert.Contains(t, out, "Failed to submit your information. Please try again.")
	require.Len(t, client.leads, 1)
	assert.Equal(t, "Ana", client.leads[0].Name)
	assert.Equal(t, "Single Family Home", client.leads[0].Interest)
}

func TestChat_ScheduleConsultation(t *testing.T) {
	client := &fakeClient{}
	out := runChat(t, client,
		"1", "1", "Ana", "ana@x.io", "",
		"1", // Schedule Consultation
		"y", "2026-10-20", "2", "1", "", "",
	)

	require.Len(t, client.bookings, 1)
	b := client.bookings[0]
	assert.Equal(t, "Ana", b.FirstName)
	assert.Equal(t, "ana@x.io", b.Email)
	assert.Equal(t, "10:00 AM", b.SelectedTime)
	assert.Equal(t, domain.ServiceBuy, b.ServiceType)
	assert.Contains(t, out, "Your consultation has been scheduled for 2026-10-20 at 10:00 AM")
}

func TestChat_BookingRejectsSunday(t *testing.T) {
	client := &fakeClient{}
	out := runChat(t, client, "/quick 3", "y", "2026-10-25")

	assert.Empty(t, client.bookings)
	assert.Contains(t, out, "Please pick a future date other than Sunday")
}

func TestChat_QuickActionJumpsToTopic(t *testing.T) {
	out := runChat(t, &fakeClient{}, "/quick Get Home Value", "/quit")
	assert.Contains(t, out, "What type of property are you looking to sell?")
}

func TestChat_UnknownCommands(t *testing.T) {
	out := runChat(t, &fakeClient{}, "/quick 9", "/nope")
	assert.Contains(t, out, "Unknown quick action: 9")
	assert.Contains(t, out, "Unknown command /nope")
}

func TestChat_QuickActionRefusedInsideTopic(t *testing.T) {
	out := runChat(t, &fakeClient{}, "1", "/quick 2", "/quit")
	assert.Contains(t, out, "Not available right now")
	assert.NotContains(t, out, "What type of property are you looking to sell?")
}
