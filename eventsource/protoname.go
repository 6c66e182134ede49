package eventsource

import "strings"

// TypeURLPrefix is the shared prefix for all storefront command and event type URLs.
const TypeURLPrefix = "type.storefront/storefront."

// TypeURL builds the full type URL for a command or event name.
// Example: TypeURL("ItemAdded") returns "type.storefront/storefront.ItemAdded"
func TypeURL(name string) string {
	return TypeURLPrefix + name
}

// Name extracts the short type name from a type URL: the last dotted
// segment of the full message name after the final "/".
func Name(typeURL string) string {
	name := typeURL
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
