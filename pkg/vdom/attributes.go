package vdom

import (
	"fmt"
	"strconv"
	"strings"
)

// Attr is a single keyed attribute, the argument form of the element
// factory functions.
type Attr struct {
	Key   string
	Value AttrValue
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// attr creates a literal Attr with the given key and value.
func attr(key, value string) Attr {
	return Attr{Key: key, Value: Lit(value)}
}

// AttrOf classifies an arbitrary value the way Props entries are classified.
func AttrOf(key string, value any) Attr {
	return Attr{Key: key, Value: Classify(key, value)}
}

// Key creates a key attribute for reconciliation.
// The key is converted to a string using fmt.Sprintf.
func Key(key any) Attr {
	return attr("key", fmt.Sprintf("%v", key))
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Style sets a style bundle. Its properties are merged onto the live style.
func Style(s StyleMap) Attr { return Attr{Key: "style", Value: StyleOf(s)} }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Form attributes

// Value sets the value attribute. It is written as a live property on update.
func Value(v string) Attr { return attr("value", v) }

// Checked sets the checked attribute. It is written as a live property on update.
func Checked(checked bool) Attr { return attr("checked", strconv.FormatBool(checked)) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled sets the disabled attribute.
func Disabled(disabled bool) Attr { return attr("disabled", strconv.FormatBool(disabled)) }

// For sets the for attribute on labels.
func For(id string) Attr { return attr("for", id) }

// Link and media attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", strconv.FormatBool(hidden)) }

// AriaLive sets the aria-live attribute.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }
