package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FishingDay/internal/config"
	"FishingDay/internal/game"
	"FishingDay/internal/model"
	"FishingDay/internal/pond"
	"FishingDay/internal/rng"
)

func newConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out, config.Default().Game), out
}

func TestChooseEquipment_RepromptsUntilValid(t *testing.T) {
	c, out := newConsole("9\nabc\n2\n")
	choice, err := c.ChooseEquipment(context.Background(), game.View{})
	require.NoError(t, err)
	assert.Equal(t, game.ChooseMedium, choice)
	assert.Contains(t, out.String(), "Please enter a number between 1 and 6")
	assert.Contains(t, out.String(), "Please enter a number.")
	assert.Contains(t, out.String(), "2. Medium fishing pole, 10 gold")
}

func TestChooseEquipment_EOF(t *testing.T) {
	c, _ := newConsole("")
	_, err := c.ChooseEquipment(context.Background(), game.View{})
	assert.ErrorIs(t, err, io.EOF)
}

func TestChooseEquipment_LastLineWithoutNewline(t *testing.T) {
	c, _ := newConsole("skip")
	choice, err := c.ChooseEquipment(context.Background(), game.View{})
	require.NoError(t, err)
	assert.Equal(t, game.ChooseSkip, choice)
}

func TestChooseEquipment_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := newConsole("1\n")
	_, err := c.ChooseEquipment(ctx, game.View{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNextOrder(t *testing.T) {
	t.Run("order", func(t *testing.T) {
		c, _ := newConsole("2 10\n")
		o, ok, err := c.NextOrder(context.Background(), game.View{Wealth: 95})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, game.Order{Color: model.ColorBlue, Quantity: 10}, o)
	})
	t.Run("blank stops", func(t *testing.T) {
		c, _ := newConsole("\n")
		_, ok, err := c.NextOrder(context.Background(), game.View{})
		require.NoError(t, err)
		assert.False(t, ok)
	})
	t.Run("done stops", func(t *testing.T) {
		c, _ := newConsole("Done\n")
		_, ok, err := c.NextOrder(context.Background(), game.View{})
		require.NoError(t, err)
		assert.False(t, ok)
	})
	t.Run("out of range reprompts", func(t *testing.T) {
		c, out := newConsole("5 1\n1 2\n")
		o, ok, err := c.NextOrder(context.Background(), game.View{})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, game.Order{Color: model.ColorRed, Quantity: 2}, o)
		assert.Contains(t, out.String(), "Invalid bait choice")
	})
	t.Run("malformed ends shopping", func(t *testing.T) {
		c, out := newConsole("lots of bait\n1 2\n")
		_, ok, err := c.NextOrder(context.Background(), game.View{})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, out.String(), "done shopping")
	})
}

func TestChooseBait(t *testing.T) {
	v := game.View{
		Baits: map[model.Color]int{model.ColorRed: 2},
		Pond:  []model.GroupCount{{Group: model.Group{Size: model.SizeSmall, Color: model.ColorRed}, Count: 3}},
	}

	t.Run("held color", func(t *testing.T) {
		c, out := newConsole("1\n")
		color, ok, err := c.ChooseBait(context.Background(), v)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, model.ColorRed, color)
		assert.Contains(t, out.String(), "red small fish: 3 available")
		assert.Contains(t, out.String(), "red bait: 2 available")
		assert.NotContains(t, out.String(), "blue bait:")
	})
	t.Run("unheld color reprompts", func(t *testing.T) {
		c, out := newConsole("2\n7\nred\n")
		color, ok, err := c.ChooseBait(context.Background(), v)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, model.ColorRed, color)
		assert.Equal(t, 2, strings.Count(out.String(), "Please choose again"))
	})
	t.Run("end the day", func(t *testing.T) {
		c, _ := newConsole("4\n")
		_, ok, err := c.ChooseBait(context.Background(), v)
		require.NoError(t, err)
		assert.False(t, ok)
	})
	t.Run("garbage ends fishing", func(t *testing.T) {
		c, _ := newConsole("xyzzy\n")
		_, ok, err := c.ChooseBait(context.Background(), v)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestContinue(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "Y\n": true, " y \n": true, "n\n": false, "yes\n": false, "\n": false} {
		c, _ := newConsole(in)
		got, err := c.Continue(context.Background(), game.DayReport{})
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestFormatEvent(t *testing.T) {
	fc := pond.Forecast{
		Counts:          map[model.Size]int{model.SizeSmall: 5, model.SizeMedium: 3, model.SizeBig: 1},
		RedPercentage:   30,
		BluePercentage:  40,
		GreenPercentage: 30,
	}
	assert.Equal(t,
		"Today's forecast: 5 small fish, 3 medium fish, and 1 big fish.\n30% are red, 40% are blue, and 30% are green!",
		formatEvent(game.Event{Kind: game.EventForecast, Forecast: &fc}))

	miss := pond.Result{Color: model.ColorRed}
	assert.Equal(t, "No fish caught this time.", formatEvent(game.Event{Kind: game.EventCast, Cast: &miss}))

	hit := pond.Result{Color: model.ColorBlue, Caught: true, Fish: model.Fish{Size: model.SizeBig, Color: model.ColorBlue, Value: 12}}
	assert.Equal(t, "You caught a blue big fish worth 12 gold!", formatEvent(game.Event{Kind: game.EventCast, Cast: &hit}))

	skipped := game.DayReport{Day: 2, Reason: game.EndSkipped, Outcome: model.OutcomeTie, ClosingWealth: 100}
	assert.Equal(t, "It's a tie! No fishing today.\nEnd of Day 2. You have 100 gold.",
		formatEvent(game.Event{Kind: game.EventDayEnd, Report: &skipped}))

	assert.Empty(t, formatEvent(game.Event{Kind: game.EventForecast}))
}

// A full day driven through the text interface: rent small, buy three red, cast
// three times into a pond of three small red fish worth 4 each.
func TestConsole_PlaysWholeDay(t *testing.T) {
	cfg := config.Default().Game
	zero := config.Range{}
	cfg.FishCount = config.SizeTable[config.Range]{Small: config.Range{Min: 3, Max: 3}, Medium: zero, Big: zero}
	cfg.FishValue.Small = config.Range{Min: 4, Max: 4}
	cfg.RedPercentage = config.Range{Min: 100, Max: 100}
	cfg.BluePercentage = zero

	in := strings.Join([]string{"1", "1 3", "", "1", "", "1", "", "1", "", "n"}, "\n") + "\n"
	out := &bytes.Buffer{}
	c := New(strings.NewReader(in), out, cfg)

	g := game.New(cfg, game.Options{
		Controller: c,
		Listener:   c,
		Delayer:    game.NoDelay{},
		Rand:       rng.New(3),
	})
	require.NoError(t, g.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Day 1 starts!")
	assert.Contains(t, text, "You got small fishing pole. You have 95 gold left.")
	assert.Contains(t, text, "You got 3 red bait. You have 92 gold left.")
	assert.Equal(t, 3, strings.Count(text, "You caught a red small fish worth 4 gold!"))
	assert.Contains(t, text, "You won! You earned more than 100 gold.")
	assert.Contains(t, text, "End of Day 1. You have 104 gold.")
}

func TestChooseEquipment_QuitTypoReprompts(t *testing.T) {
	c, out := newConsole("quip\nexist\nsmal\n")
	choice, err := c.ChooseEquipment(context.Background(), game.View{})
	require.NoError(t, err)
	assert.Equal(t, game.ChooseSmall, choice)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid input. Please enter a number."))
}
