package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"homework_status_bot/internal/domain/journal"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/telebot.v3"
)

type fetchResult struct {
	payload any
	err     error
}

// fakeFetcher replays results in order and repeats the last one.
type fakeFetcher struct {
	results []fetchResult
	since   []int64
}

func (f *fakeFetcher) FetchStatus(_ context.Context, since int64) (any, error) {
	f.since = append(f.since, since)
	i := len(f.since) - 1
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i].payload, f.results[i].err
}

type sentMessage struct {
	chatID string
	text   string
}

// fakeTelegram records messages; failNext makes the next n sends fail.
type fakeTelegram struct {
	mu       sync.Mutex
	sent     []sentMessage
	failNext int
	panicMsg string
}

func (f *fakeTelegram) SendMessage(_ context.Context, chatID string, text string, _ *telebot.SendOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.failNext > 0 {
		f.failNext--
		return errors.New("telegram: Bad Request: chat not found (400)")
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeTelegram) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.text)
	}
	return out
}

type fakeJournal struct {
	entries []*journal.Entry
	err     error
}

func (f *fakeJournal) Record(_ context.Context, e *journal.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func jsonPayload(t *testing.T, body string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("bad test payload %q: %v", body, err)
	}
	return v
}

func testLogger() (*logrus.Entry, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(log), hook
}
