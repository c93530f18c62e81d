package game

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

var glyphs = map[Tile]byte{
	Grass:   '.',
	Wall:    '#',
	Auth:    'A',
	Verify:  'V',
	Balance: '$',
	Shop:    'S',
}

// Render writes the grid, the status line and the overlay to w.
func (g *Game) Render(w io.Writer) error {
	var b strings.Builder

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			switch {
			case x == g.x && y == g.y && g.hat:
				b.WriteByte('^')
			case x == g.x && y == g.y:
				b.WriteByte('@')
			default:
				b.WriteByte(glyphs[g.grid.At(x, y)])
			}
		}
		b.WriteByte('\n')
	}

	if g.status != "" {
		b.WriteString(g.status)
		b.WriteByte('\n')
	}
	if g.overlay != "" {
		b.WriteByte('\n')
		b.WriteString(g.overlay)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

type position struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Amount    float64 `json:"amount"`
	CostBasis float64 `json:"costBasis"`
}

// Holdings formats the crypto positions of a holdings response as a table.
func Holdings(data json.RawMessage) string {
	var res struct {
		Content *struct {
			Positions *[]position `json:"cryptocurrencyPositions"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &res); err != nil || res.Content == nil || res.Content.Positions == nil {
		return "Error: Could not load financial data.\n"
	}

	var b strings.Builder
	b.WriteString("Your Crypto Holdings\n")

	positions := *res.Content.Positions
	if len(positions) == 0 {
		b.WriteString("No cryptocurrency positions found.\n")
		return b.String()
	}

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSYMBOL\tAMOUNT\tCOST BASIS\tTOTAL VALUE")
	for _, p := range positions {
		name, symbol := p.Name, p.Symbol
		if name == "" {
			name = "N/A"
		}
		if symbol == "" {
			symbol = "N/A"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%s\t%s\n", name, symbol, p.Amount, usd(p.CostBasis), usd(p.Amount*p.CostBasis))
	}
	_ = tw.Flush()

	return b.String()
}

// usd formats a dollar amount with thousands separators.
func usd(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	return sign + "$" + b.String() + frac
}

// Run is the game loop, it reads moves from in one line at a time and
// redraws to out after every input or applied result. Returns when in is
// exhausted, the player quits or ctx is done.
func (g *Game) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := g.draw(out); err != nil {
		return err
	}

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := g.input(ctx, line); quit {
				return nil
			}
		case r := <-g.results:
			g.apply(r)
		case <-ctx.Done():
			return ctx.Err()
		}

		if err := g.draw(out); err != nil {
			return err
		}
	}
}

// input handles one line, every character or word is a move.
func (g *Game) input(ctx context.Context, line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	for _, f := range fields {
		if f == "q" || f == "quit" {
			return true
		}

		if d, ok := ParseDirection(f); ok {
			g.Move(ctx, d)
			continue
		}

		// compact form, e.g. "ddd"
		for _, c := range f {
			if d, ok := ParseDirection(string(c)); ok {
				g.Move(ctx, d)
			}
		}
	}
	return false
}

func (g *Game) draw(out io.Writer) error {
	if _, err := io.WriteString(out, "\n"); err != nil {
		return err
	}
	if err := g.Render(out); err != nil {
		return err
	}
	_, err := io.WriteString(out, "move with w/a/s/d then enter, q to quit\n")
	return err
}
