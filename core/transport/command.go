package transport

// Command is the structured client-message payload understood by the
// remote side of the transport: a service-scoped action plus named
// arguments.
type Command struct {
	Service   string     `json:"service"`
	Action    string     `json:"action"`
	Arguments []Argument `json:"arguments"`
}

// Argument is one named command argument.
type Argument struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// AppendUserMessageCommand builds the llm append_to_messages command used
// to inject typed user text when no native text-send capability exists.
func AppendUserMessageCommand(text string) Command {
	return Command{
		Service: "llm",
		Action:  "append_to_messages",
		Arguments: []Argument{
			{
				Name: "messages",
				Value: []map[string]any{
					{
						"role": "user",
						"content": []map[string]any{
							{"type": "text", "text": text},
						},
					},
				},
			},
		},
	}
}
