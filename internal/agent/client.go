package agent

import (
	"bufio"
	"fmt"
	"io"
	"net"

	"daifugo/internal/analyzer"
	"daifugo/internal/validator"
	"daifugo/internal/wire"

	"github.com/rs/zerolog"
)

// Client drives one TCP connection to the arbiter with Strategy's reference
// play. It is single-threaded: it alternately reads and writes on one
// socket, mirroring the server's send order exactly rather than guessing
// frame boundaries off the wire.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	logger zerolog.Logger
	strat  Strategy

	revolution  bool
	elevenBack  bool
	jokerSingle bool
	field       validator.Field
}

// Dial connects to addr, sends a profile frame carrying name, and returns
// the seat id the arbiter assigns.
func Dial(addr, name string, logger zerolog.Logger) (*Client, int, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, 0, fmt.Errorf("agent: dial %s: %w", addr, err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
	c := &Client{conn: conn, reader: bufio.NewReader(conn), logger: logger}
	c.field.Clear()

	profile := &wire.Table{}
	profile.SetU(0, 0, wire.ProtocolVersion)
	for i := 0; i < len(name) && i < wire.NameCols; i++ {
		profile.SetU(wire.NameRow, i, uint32(name[i]))
	}
	if err := c.writeTable(profile); err != nil {
		return nil, 0, err
	}

	seat, err := c.readCode()
	if err != nil {
		return nil, 0, fmt.Errorf("agent: read seat assignment: %w", err)
	}
	return c, int(seat), nil
}

func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) readTable() (*wire.Table, error) {
	buf := make([]byte, wire.FrameSize)
	if _, err := io.ReadFull(c.reader, buf); err != nil {
		return nil, fmt.Errorf("agent: read table: %w", err)
	}
	return wire.DecodeTable(buf)
}

func (c *Client) readCode() (uint32, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(c.reader, buf); err != nil {
		return 0, fmt.Errorf("agent: read code: %w", err)
	}
	return wire.DecodeU32(buf)
}

func (c *Client) writeTable(t *wire.Table) error {
	if _, err := c.conn.Write(wire.EncodeTable(t)); err != nil {
		return fmt.Errorf("agent: write table: %w", err)
	}
	return nil
}

// Run plays games back to back until the arbiter signals the session is
// over.
func (c *Client) Run() error {
	for {
		allGamesEnded, err := c.playGame()
		if err != nil {
			return err
		}
		if allGamesEnded {
			return nil
		}
	}
}

// playGame runs one game's initial-hand phase, optional exchange, and turn
// loop. It reports whether the arbiter signalled the session is complete.
func (c *Client) playGame() (bool, error) {
	c.revolution, c.elevenBack, c.jokerSingle = false, false, false
	c.field.Clear()

	initial, err := c.readTable()
	if err != nil {
		return false, err
	}
	exchangeCell := initial.Get(wire.ControlRow, wire.ColExchangeCount)
	if exchangeCell == 1 || exchangeCell == 2 {
		hand := wire.ExtractHeld(initial)
		give := c.strat.ChooseExchange(hand, int(exchangeCell), false)
		out := &wire.Table{}
		wire.PlaceSubmission(out, give, nil, false)
		if err := c.writeTable(out); err != nil {
			return false, err
		}
	}

	for {
		handTable, err := c.readTable()
		if err != nil {
			return false, err
		}
		hand := wire.ExtractHeld(handTable)
		c.revolution = handTable.Get(wire.ControlRow, wire.ColRevolution) != 0
		c.elevenBack = handTable.Get(wire.ControlRow, wire.ColElevenBack) != 0
		lockActive := handTable.Get(wire.ControlRow, wire.ColLock) != 0
		c.field.LockActive = lockActive
		if handTable.Get(wire.ControlRow, wire.ColOnset) != 0 {
			c.field.Clear()
		}
		effectiveRevolution := c.revolution != c.elevenBack

		if handTable.Get(wire.ControlRow, wire.ColIsYourTurn) != 0 {
			var sub Submission
			if c.field.IsEmpty() {
				sub = c.strat.ChooseLead(hand, effectiveRevolution)
			} else {
				sub = c.strat.ChooseFollow(hand, c.field, effectiveRevolution, c.jokerSingle)
			}
			jokerAsSelf := false
			for _, card := range sub.Cards {
				if card.IsJoker {
					jokerAsSelf = true
				}
			}
			out := &wire.Table{}
			wire.PlaceSubmission(out, sub.Cards, sub.Substitutions, jokerAsSelf)
			if err := c.writeTable(out); err != nil {
				return false, err
			}
			if _, err := c.readCode(); err != nil {
				return false, err
			}
		}

		fieldTable, err := c.readTable()
		if err != nil {
			return false, err
		}
		realCards, jokerPositions := wire.ExtractSubmission(fieldTable)
		a := analyzer.Analyze(realCards, jokerPositions, effectiveRevolution)
		c.jokerSingle = a.Type == analyzer.JokerSingle
		c.field = validator.Field{
			Cards:       realCards,
			Type:        a.Type,
			Count:       a.Count,
			BaseRank:    a.BaseRank,
			SuitPattern: a.SuitPattern,
			LockActive:  lockActive,
		}

		code, err := c.readCode()
		if err != nil {
			return false, err
		}
		switch code {
		case wire.GameContinue:
			continue
		case wire.GameEnd:
			return false, nil
		case wire.AllGamesEnd:
			return true, nil
		default:
			c.logger.Warn().Uint32("code", code).Msg("unexpected game-state code")
			return false, fmt.Errorf("agent: unexpected game-state code %d", code)
		}
	}
}
