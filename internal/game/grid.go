package game

import "fmt"

type Tile int

const (
	Grass Tile = iota
	Wall
	Auth
	Verify
	Balance
	Shop
)

func (t Tile) String() string {
	switch t {
	case Grass:
		return "grass"
	case Wall:
		return "wall"
	case Auth:
		return "auth"
	case Verify:
		return "verify"
	case Balance:
		return "balance"
	case Shop:
		return "shop"
	default:
		panic(fmt.Sprintf("invalid tile: %d", t))
	}
}

const (
	Width  = 15
	Height = 10
)

type Grid [Height][Width]Tile

// DefaultGrid is the starting map, indexed [y][x].
var DefaultGrid = Grid{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 2, 0, 3, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 5, 0, 0, 4, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

func (g *Grid) Walkable(x, y int) bool {
	return g.InBounds(x, y) && g[y][x] != Wall
}

func (g *Grid) At(x, y int) Tile {
	return g[y][x]
}

// Set changes a tile, coordinates outside the grid are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g[y][x] = t
	}
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		panic(fmt.Sprintf("invalid direction: %d", d))
	}
}

// ParseDirection maps wasd and arrow-like words to a direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "w", "k", "up":
		return Up, true
	case "s", "j", "down":
		return Down, true
	case "a", "h", "left":
		return Left, true
	case "d", "l", "right":
		return Right, true
	default:
		return 0, false
	}
}
