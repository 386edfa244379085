// Package greeting holds the text shown on the landing card.
package greeting

import "math/rand"

const (
	Title    = "Jardín de flores para mi amour"
	Subtitle = "UN DETALLE QUE NUNCA SE MARCHITA"
	Footer   = "CONTIGO A CADA INSTANTE"

	HugButton      = "¡Recibir mi Abrazo!"
	NoteButton     = "Tengo una nota para ti..."
	NoteCloseLabel = "Cerrar cartita"
	SpaceButton    = "¡Salir de la Tierra!"
	HugBanner      = "~ un abrazo enorme ~"

	BackButton   = "Volver a la Tierra"
	CloseButton  = "Cerrar"
	Instructions = "Haz clic en los planetas (o pulsa 1-7) para descubrirlos"
	AllFoundHint = "¡Los encontraste todos! Haz clic en el sol (o pulsa 0)"
	SecretTitle  = "Mensaje secreto"
)

// Phrases are the landing card sayings; one is picked per session.
var Phrases = []string{
	"Eres el pensamiento más bonito de mi día.",
	"No importa la distancia, siempre estás conmigo.",
	"Eres mi lugar favorito en el mundo.",
	"Cada pétalo de esta flor es una razón para amarte.",
	"Gracias por ser mi alegría diaria.",
	"Eres el 'te extraño' más dulce que he sentido.",
	"Mi corazón late un poquito más fuerte por ti.",
	"Eres la casualidad más hermosa de mi vida.",
}

// Note is the letter revealed by the note button.
const Note = "Aunque no nos veamos ahora, amour, quiero que sepas que te llevo " +
	"siempre en mi corazoncito, en mi mente y en todo de mí, porque eres mi " +
	"mundo entero y súper especial para mí. Eres mi flor favorita y quería que " +
	"tuvieras algo que no se marchitara. Bueno, espero que te guste, amour, y " +
	"que tengas un gran día, mi vida. ¡Feliz Día de San Valentín! Te amo " +
	"muchísimo, amour."

// PickPhrase returns a random phrase from rng.
func PickPhrase(rng *rand.Rand) string {
	return Phrases[rng.Intn(len(Phrases))]
}
