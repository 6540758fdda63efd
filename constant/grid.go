package constant

// Grid discretization
const (
	// GridResolution is the number of cells along each axis of the square grid
	GridResolution = 193

	// GridScale is the number of cells per unit of normalized coordinate space (cell size 0.01)
	GridScale = 100

	// GridCells is the flat length of one grid layer (193 * 193)
	GridCells = GridResolution * GridResolution

	// GridMinResolution rejects degenerate grids that cannot hold a center cell plus neighbours
	GridMinResolution = 3
)

// Entity layout in flat buffers
const (
	// PositionStride is the float count per 2D position, target, radius or speed pair
	PositionStride = 2

	// ColorStride is the float count per RGBA color
	ColorStride = 4

	// SegmentStride is the float count per obstacle segment (two endpoints)
	SegmentStride = 4

	// PairStride is the int count per attraction or influence pair
	PairStride = 2

	// BandStride is the float count per lookahead band entry (min, max)
	BandStride = 2

	// ActivationStride is the int count per cell in the activation layer (up, down)
	ActivationStride = 2
)

// Circle variant
const (
	// CircleOutlineSamples is the number of outline points the kernel writes per circle
	CircleOutlineSamples = 360
)

// Tile board covering [-1,1]²
const (
	// TileBoardSide is the number of tiles along each axis
	TileBoardSide = 4

	// TileStep is the side length of a tile in normalized coordinates
	TileStep = 0.5

	// TileCorners is the number of corners stored per tile (UL, UR, LL, LR)
	TileCorners = 4
)
