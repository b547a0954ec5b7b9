package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"FishingDay/internal/config"
	"FishingDay/internal/game"
	"FishingDay/internal/model"
)

// Console plays the day through line-based text input and output.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	poleCost config.SizeTable[int]
	baitCost config.ColorTable[int]
}

var (
	_ game.Controller = (*Console)(nil)
	_ game.Listener   = (*Console)(nil)
)

// New creates a Console reading from in and writing to out. Prices shown in the
// menus come from cfg.
func New(in io.Reader, out io.Writer, cfg config.Game) *Console {
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		poleCost: cfg.PoleCost,
		baitCost: cfg.BaitCost,
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// readLine returns the next line without its terminator. io.EOF is returned only
// when nothing is left to read.
func (c *Console) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) ChooseEquipment(ctx context.Context, v game.View) (game.Choice, error) {
	for {
		c.printf("\nChoose your fishing pole:\n")
		c.printf("1. Small fishing pole, %d gold\n", c.poleCost.Small)
		c.printf("2. Medium fishing pole, %d gold\n", c.poleCost.Medium)
		c.printf("3. Big fishing pole, %d gold\n", c.poleCost.Big)
		c.printf("4. Auto rent pole and buy baits based on forecast\n")
		c.printf("5. Skip the day\n")
		c.printf("6. Quit the game\n")

		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		choice, err := parseEquipment(line)
		if err == nil {
			return choice, nil
		}
		if errors.Is(err, errOutOfRange) {
			c.printf("\nInvalid choice. Please enter a number between 1 and 6.\n")
		} else {
			c.printf("\nInvalid input. Please enter a number.\n")
		}
	}
}

func (c *Console) NextOrder(ctx context.Context, v game.View) (game.Order, bool, error) {
	for {
		c.printf("\nYou have %d gold. Buy your baits:\n", v.Wealth)
		c.printf("1. Red bait, %d gold\n", c.baitCost.Red)
		c.printf("2. Blue bait, %d gold\n", c.baitCost.Blue)
		c.printf("3. Green bait, %d gold\n", c.baitCost.Green)
		c.printf("Enter bait number and quantity (e.g., '2 10'), or press Enter when done:\n")

		line, err := c.readLine(ctx)
		if err != nil {
			return game.Order{}, false, err
		}
		trimmed := strings.ToLower(strings.TrimSpace(line))
		if trimmed == "" || trimmed == "done" {
			return game.Order{}, false, nil
		}

		order, err := parseOrder(trimmed)
		switch {
		case err == nil:
			return order, true, nil
		case errors.Is(err, errOutOfRange):
			c.printf("Invalid bait choice. Please enter 1, 2, or 3.\n")
		default:
			c.printf("Invalid input, done shopping. Use the format '2 10' next time.\n")
			return game.Order{}, false, nil
		}
	}
}

func (c *Console) ChooseBait(ctx context.Context, v game.View) (model.Color, bool, error) {
	for {
		c.printf("\n%s", formatPond(v.Pond))
		c.printf("Choose which bait to use:\n%s", formatBag(v.Baits))
		c.printf("1. Red bait\n2. Blue bait\n3. Green bait\n4. End the day\n")

		line, err := c.readLine(ctx)
		if err != nil {
			return 0, false, err
		}
		color, ok, err := parseBait(line)
		switch {
		case err == nil && !ok:
			return 0, false, nil
		case err == nil && v.Baits[color] > 0:
			c.printf("You chose %s bait.\n", color)
			return color, true, nil
		case err == nil, errors.Is(err, errOutOfRange):
			c.printf("Invalid choice or no baits of that type available. Please choose again.\n")
		default:
			c.printf("Invalid input. Please enter a number corresponding to the bait type.\n")
			return 0, false, nil
		}
	}
}

func (c *Console) Cast(ctx context.Context) error {
	c.printf("Press Enter to cast and pull the pole.\n")
	_, err := c.readLine(ctx)
	return err
}

func (c *Console) Continue(ctx context.Context, r game.DayReport) (bool, error) {
	c.printf("\nDo you want to continue? (y/n)\n")
	line, err := c.readLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}

// Notice renders a day event.
func (c *Console) Notice(e game.Event) {
	if msg := formatEvent(e); msg != "" {
		c.printf("%s\n", msg)
	}
}
