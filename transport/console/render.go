package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/sugarpacket-game/internal/entity"
)

const (
	cornerCell = "##"
	emptyCell  = ".."
)

func (that *Server) render(out io.Writer) {
	game := that.session.Game

	fmt.Fprint(out, drawBoard(&game.State))

	jump := "OFF"
	if that.jumpMove {
		jump = "ON"
	}
	fmt.Fprintf(out, "Selected Token: %d | Jump: %s\n", that.selectedToken, jump)

	if game.IsFinished() {
		fmt.Fprintln(out, winnerText(game))
	}
}

// drawBoard - one line per row, two characters per cell.
func drawBoard(state *entity.State) string {
	var cells [entity.BoardSize][entity.BoardSize]string

	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			cells[row][col] = emptyCell
			if entity.IsCorner(row, col) {
				cells[row][col] = cornerCell
			}
		}
	}

	for i := range entity.TokensPerSide {
		a, b := state.A[i], state.B[i]
		cells[a.Row][a.Col] = fmt.Sprintf("A%d", i)
		cells[b.Row][b.Col] = fmt.Sprintf("B%d", i)
	}

	var builder strings.Builder
	for row := range entity.BoardSize {
		builder.WriteString(strings.Join(cells[row][:], " "))
		builder.WriteByte('\n')
	}

	return builder.String()
}

func winnerText(game *entity.Game) string {
	if game.Winner == game.BotSide {
		return fmt.Sprintf("Bot %s Wins!", game.Winner)
	}

	return fmt.Sprintf("Player %s Wins!", game.Winner)
}
