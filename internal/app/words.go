package app

// DefaultWords is the built-in pool the board generator samples from.
// Boards take 25 of these at a time, so the list stays comfortably larger
// to keep consecutive matches from feeling repetitive.
var DefaultWords = []string{
	// Places
	"ALPS", "TEMPLE", "HARBOR", "CASINO", "SUBWAY",
	"TOWER", "BRIDGE", "TUNNEL", "STADIUM", "PYRAMID",

	// Creatures
	"VIKING", "WEREWOLF", "DRAGON", "FALCON", "OCTOPUS",
	"SERPENT", "FROG", "WORM", "PANTHER", "SCORPION",

	// Objects
	"BELL", "BALLOON", "SATELLITE", "ROBOT", "COMPASS",
	"ANCHOR", "LANTERN", "MIRROR", "HELMET", "HOURGLASS",
	"WHISTLE", "UMBRELLA", "HAMMER", "BATTERY", "WHEEL",

	// Nature
	"SKY", "SEA", "EARTH", "FIRE", "AIR",
	"SUN", "MOON", "ROOT", "IVORY", "GLACIER",
	"THUNDER", "VOLCANO", "METEOR", "ECLIPSE", "AURORA",

	// Everyday
	"ICE CREAM", "PARTY", "SNACK", "SHOULDER", "TONGUE",
	"RIBBON", "CLAW", "JET", "PILE", "FORM",
}
