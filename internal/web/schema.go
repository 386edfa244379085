package web

import (
	"github.com/invopop/jsonschema"
)

// Schema describes both directions of the websocket protocol.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	client := reflector.Reflect(new(ClientMessage))
	client.Version = ""
	client.Title = "Client message"
	client.Description = "Sent by the browser when a body, the sun or the close button is clicked."

	server := reflector.Reflect(new(ServerMessage))
	server.Version = ""
	server.Title = "Server message"
	server.Description = "Catalog on connect, then a snapshot or an error after every client message."

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Jardín websocket protocol",
		Description: "Messages exchanged on /ws.",
		Definitions: jsonschema.Definitions{
			"client": client,
			"server": server,
		},
		OneOf: []*jsonschema.Schema{
			{Ref: "#/$defs/client"},
			{Ref: "#/$defs/server"},
		},
	}
}
