package state

// Avatar is a selectable participant picture.
type Avatar struct {
	ID    string
	Emoji string
	Label string
}

// FallbackEmoji is shown for avatar ids missing from the catalog.
const FallbackEmoji = "😎"

// Avatars is the catalog offered at registration.
var Avatars = []Avatar{
	{ID: "frog-green", Emoji: "🐸", Label: "Green Frog"},
	{ID: "owl-purple", Emoji: "🦉", Label: "Purple Owl"},
	{ID: "turtle-teal", Emoji: "🐢", Label: "Teal Turtle"},
	{ID: "cat-orange", Emoji: "🐱", Label: "Orange Cat"},
	{ID: "dog-brown", Emoji: "🐶", Label: "Brown Dog"},
	{ID: "rabbit-white", Emoji: "🐰", Label: "White Rabbit"},
	{ID: "bear-blue", Emoji: "🐻", Label: "Blue Bear"},
	{ID: "fox-red", Emoji: "🦊", Label: "Red Fox"},
}

const (
	DefaultAvatarA = "frog-green"
	DefaultAvatarB = "owl-purple"
)

// LookupAvatar finds an avatar by id.
func LookupAvatar(id string) (Avatar, bool) {
	for _, a := range Avatars {
		if a.ID == id {
			return a, true
		}
	}
	return Avatar{ID: id, Emoji: FallbackEmoji}, false
}
