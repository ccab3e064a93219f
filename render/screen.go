package render

import (
	"github.com/gdamore/tcell/v2"
)

// Present writes every canvas cell to the screen as a colored blank and shows it
func (c *Canvas) Present(screen tcell.Screen) {
	w, h := screen.Size()
	cols, rows := min(w, c.cols), min(h, c.rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			style := tcell.StyleDefault.Background(c.cells[row*c.cols+col].TcellColor())
			screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// DrawText writes a single line of text over the screen starting at (col, row)
func DrawText(screen tcell.Screen, col, row int, text string, fg, bg RGB) {
	style := tcell.StyleDefault.Foreground(fg.TcellColor()).Background(bg.TcellColor())
	w, _ := screen.Size()
	for _, r := range text {
		if col >= w {
			return
		}
		screen.SetContent(col, row, r, nil, style)
		col++
	}
}
