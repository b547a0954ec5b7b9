package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"FishingDay/internal/game"
	"FishingDay/internal/model"
	"FishingDay/internal/pond"
	"FishingDay/internal/recorder"
)

func newTestNotifier(srv *httptest.Server) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", "", nil)
	n.APIBase = srv.URL
	return n
}

func TestTelegramNotifier_Send(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, newTestNotifier(srv).Send(context.Background(), "hello"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestTelegramNotifier_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := newTestNotifier(srv).Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

type flaky struct {
	fails int32
	calls atomic.Int32
}

func (f *flaky) Send(context.Context, string) error {
	if f.calls.Add(1) <= f.fails {
		return assert.AnError
	}
	return nil
}

func TestSendWithRetry(t *testing.T) {
	t.Run("no retries gives up at once", func(t *testing.T) {
		f := &flaky{fails: 5}
		start := time.Now()
		err := SendWithRetry(context.Background(), f, "x", 0, zap.NewNop())
		assert.ErrorIs(t, err, assert.AnError)
		assert.EqualValues(t, 1, f.calls.Load())
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})
	t.Run("recovers after one failure", func(t *testing.T) {
		f := &flaky{fails: 1}
		require.NoError(t, SendWithRetry(context.Background(), f, "x", 2, zap.NewNop()))
		assert.EqualValues(t, 2, f.calls.Load())
	})
	t.Run("cancelled while backing off", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := &flaky{fails: 5}
		err := SendWithRetry(ctx, f, "x", 3, zap.NewNop())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

type captured struct {
	mu   sync.Mutex
	msgs []string
}

func (c *captured) Send(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, text)
	return nil
}

func sampleReport() game.DayReport {
	return game.DayReport{
		Day:    3,
		Choice: game.ChooseAuto,
		Pole:   &model.Pole{Size: model.SizeMedium, Cost: 10},
		Forecast: pond.Forecast{
			Counts:          map[model.Size]int{model.SizeSmall: 4, model.SizeMedium: 6, model.SizeBig: 2},
			RedPercentage:   30,
			BluePercentage:  50,
			GreenPercentage: 20,
		},
		OpeningWealth: 100,
		ClosingWealth: 104,
		DidFish:       true,
		Outcome:       model.OutcomeWin,
		Reason:        game.EndPlayed,
		Purchases: []game.PurchaseRecord{
			{Item: "medium fishing pole", Price: 10, Accepted: true},
			{Item: "20 blue bait", Price: 40, Accepted: true},
			{Item: "90 green bait", Price: 270, Accepted: false},
		},
		Casts: []pond.Result{
			{Color: model.ColorBlue, Caught: true, Fish: model.Fish{Size: model.SizeMedium, Color: model.ColorBlue, Value: 8}},
			{Color: model.ColorBlue},
		},
	}
}

func TestFormatDayDigest(t *testing.T) {
	msg := FormatDayDigest(sampleReport())
	assert.Contains(t, msg, "<b>Fishing Day 3</b>")
	assert.Contains(t, msg, "Forecast: 4 small, 6 medium, 2 big")
	assert.Contains(t, msg, "Colors: 30% red, 50% blue, 20% green")
	assert.Contains(t, msg, "Choice: auto (medium pole)")
	assert.Contains(t, msg, "Spent: 50 gold (1 rejected)")
	assert.Contains(t, msg, "Casts: 2, caught 1, earned 8 gold")
	assert.Contains(t, msg, "Wealth: 100 → 104")
	assert.Contains(t, msg, "🏆 <b>WIN</b>")
}

func TestFormatDayDigest_SkippedDay(t *testing.T) {
	r := game.DayReport{Day: 1, Choice: game.ChooseSkip, OpeningWealth: 100, ClosingWealth: 100,
		Outcome: model.OutcomeTie, Reason: game.EndSkipped}
	msg := FormatDayDigest(r)
	assert.NotContains(t, msg, "Casts:")
	assert.Contains(t, msg, "<b>TIE</b> (skipped)")
}

func TestDigestHook(t *testing.T) {
	c := &captured{}
	h := NewDigestHook(c, 0, nil)

	require.NoError(t, h.DayEnded(context.Background(), sampleReport()))
	require.NoError(t, h.DayEnded(context.Background(), game.DayReport{Reason: game.EndQuit}))

	require.Len(t, c.msgs, 1)
	assert.Contains(t, c.msgs[0], "Fishing Day 3")
}

func TestSessionCommands(t *testing.T) {
	rec := recorder.NewNoopRecorder()
	r := sampleReport()
	r.SessionID = "abc"
	require.NoError(t, rec.RecordDay(context.Background(), r))

	handle := SessionCommands("abc", rec, zap.NewNop())
	reply := handle("/summary@fishing_bot")
	assert.Contains(t, reply, "Days: 1")
	assert.Contains(t, reply, "Wins: 1 | Losses: 0 | Ties: 0")
	assert.Contains(t, reply, "Earned from catches: 8 gold")

	assert.Contains(t, handle("/help"), "/summary")
	assert.Empty(t, handle("hello"))
	assert.Empty(t, handle(""))
}

func TestStartPolling_AnswersCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		served  atomic.Bool
		replies = make(chan string, 1)
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			if served.CompareAndSwap(false, true) {
				w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":"/summary"}}]}`))
				return
			}
			assert.Equal(t, "8", r.URL.Query().Get("offset"))
			<-r.Context().Done()
		case "/botTOKEN/sendMessage":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			replies <- body["text"]
		}
	}))
	defer srv.Close()

	n := newTestNotifier(srv)
	done := make(chan struct{})
	go func() {
		n.StartPolling(ctx, func(cmd string) string { return "got " + cmd })
		close(done)
	}()

	select {
	case text := <-replies:
		assert.Equal(t, "got /summary", text)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply sent")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}
}
