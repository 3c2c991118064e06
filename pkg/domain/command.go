package domain

// Op names a rendering instruction sent to a remote surface.
type Op string

const (
	OpMount     Op = "mount"
	OpEmbed     Op = "embed"
	OpShow      Op = "show"
	OpHide      Op = "hide"
	OpFadeIn    Op = "fadeIn"
	OpFadeOut   Op = "fadeOut"
	OpSlideDown Op = "slideDown"
	OpRemove    Op = "remove"
	OpUnmount   Op = "unmount"
)

// Command is the wire form of a rect operation. Duration is milliseconds.
type Command struct {
	Seq      uint64 `json:"seq"`
	Show     string `json:"show,omitempty"`
	Op       Op     `json:"op"`
	Slot     int    `json:"slot"`
	URL      string `json:"url,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// Animated reports whether the op runs over time on the surface.
func (o Op) Animated() bool {
	switch o {
	case OpFadeIn, OpFadeOut, OpSlideDown:
		return true
	}
	return false
}
