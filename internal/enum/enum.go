package enum

// --- Order lifecycle (CHECK constrained in DB) ---

const (
	OrderStatusPendiente  = "pendiente"
	OrderStatusPreparando = "preparando"
	OrderStatusListo      = "listo"
	OrderStatusEntregado  = "entregado"
	OrderStatusCancelado  = "cancelado"
)

// --- Catalog ---

const (
	ProductTypeBurger = "burger"
	ProductTypeSide   = "side"
)

// Stable catalog codes the side variants are matched by.
const (
	SideCodePapas      = "papas"
	SideCodePapasChess = "papas_chessbeicon"
)

// --- Item customization labels ---

const (
	BaconAsada        = "asada"
	BaconCaramelizada = "caramelizada"
)

const (
	LettuceNormal = "normal"
	LettuceWrap   = "wrap"
	LettuceNone   = "sin"
)

const (
	DrinkNone     = "none"
	DrinkCoca     = "coca"
	DrinkCocaZero = "coca_zero"
)
