// Package handlers implements the concrete request handlers described in
// spec §4.6 (echo, static, not_found, health), §4.7 (register, login,
// logout, post_message, get_messages), and §4.8 (the entity CRUD API).
// Each is grounded on the matching file under original_source/src/, with
// the original's std::hash "hashing" and ad-hoc JSON replaced by this
// repo's userstore/blobstore/messagelog packages and
// encoding/json.
package handlers

import "fmt"

// Factory args convention: args[0] is always the route's prefix (the
// path the dispatcher matched this handler under), followed by the
// route's flattened config key/value pairs — mirroring the original
// implementation's registry factories, which always receive the path as
// the first positional arg (see e.g. original_source/src/echo_handler.cc
// and static_handler.cc).

func routePrefix(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("handler requires a route prefix arg")
	}
	return args[0], nil
}

// argValue looks up key among args' flattened key/value pairs, skipping
// args[0] (the route prefix).
func argValue(args []string, key string) (string, bool) {
	if len(args) <= 1 {
		return "", false
	}
	kv := args[1:]
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i] == key {
			return kv[i+1], true
		}
	}
	return "", false
}
