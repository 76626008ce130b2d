package catalog

// fallbackJSON is a minimal offline catalog used when the network and the
// cache are both unavailable. Enough to run a demo battle, nothing more.
const fallbackJSON = `{
  "Garchomp": {
    "TankChomp": {
      "moves": ["Earthquake", "Dragon Tail", "Stealth Rock", "Spikes"],
      "ability": "Rough Skin",
      "item": "Rocky Helmet"
    },
    "Swords Dance": {
      "moves": ["Swords Dance", "Scale Shot", "Earthquake", "Fire Fang"],
      "ability": "Rough Skin",
      "item": "Loaded Dice"
    }
  },
  "Dragapult": {
    "Choice Specs": {
      "moves": ["Draco Meteor", "Shadow Ball", "Flamethrower", "U-turn"],
      "ability": "Infiltrator",
      "item": "Choice Specs"
    },
    "Choice Band": {
      "moves": ["Dragon Darts", "Tera Blast", "U-turn", "Sucker Punch"],
      "ability": "Clear Body",
      "item": "Choice Band"
    }
  }
}`

// Fallback returns the built-in minimal catalog.
func Fallback() *Catalog {
	c, err := Decode([]byte(fallbackJSON))
	if err != nil {
		// The fallback payload is a compile-time constant; a decode
		// failure is a programming error.
		panic(err)
	}
	return c
}
