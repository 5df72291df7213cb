package transport

// Bundle is one candidate credential shape tried against a transport's
// connect call. Name identifies the shape for diagnostics; Payload is the
// wire form handed to the transport.
type Bundle struct {
	Name    string
	Payload map[string]any
}

// Bundles builds the fixed, ordered list of credential shapes from one
// authoritative (url, token) pair. The exact shape a transport/server
// pairing accepts is not stable across versions, so callers try these in
// order until one connects. The pair itself never changes across shapes.
func Bundles(url, token string) []Bundle {
	return []Bundle{
		{Name: "room_url", Payload: map[string]any{"room_url": url, "token": token}},
		{Name: "url", Payload: map[string]any{"url": url, "token": token}},
		{Name: "auth.room_url", Payload: map[string]any{"auth": map[string]any{"room_url": url, "token": token}}},
		{Name: "auth.url", Payload: map[string]any{"auth": map[string]any{"url": url, "token": token}}},
		{Name: "daily.room_url", Payload: map[string]any{"daily": map[string]any{"room_url": url, "token": token}}},
		{Name: "daily.url", Payload: map[string]any{"daily": map[string]any{"url": url, "token": token}}},
		{Name: "room.url", Payload: map[string]any{"room": map[string]any{"url": url}, "token": token}},
	}
}
