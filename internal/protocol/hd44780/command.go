package hd44780

import (
	"fmt"

	"github.com/retroenv/logicdecode/internal/annotation"
	"github.com/retroenv/retrogolib/log"
)

// decodeWriteCommand classifies a byte written to the command register.
// The command is selected by its highest set bit, so the smallest matching
// bit-pattern class wins. A Function Set command switches the bus width
// state, which is returned alongside the annotation.
func (d *Decoder) decodeWriteCommand(value uint8, mode Mode) (annotation.Annotation, Mode) {
	// unreachable with a full byte range, kept as the fall-through result
	ann := basicAnnotation(annotation.Warning, fmt.Sprintf("%8b: Unknown command", value))

	switch {
	case value < 1<<1: // clear display
		ann = basicAnnotation(annotation.ClearDisplay, "Clr")

	case value < 1<<2: // cursor home
		ann = basicAnnotation(annotation.ReturnHome, "CH")

	case value < 1<<3: // entry mode set
		ann = entryModeAnnotation(value)

	case value < 1<<4: // display control, fields not decoded
		ann = basicAnnotation(annotation.DisplayControl, "Display control: <not implemented>")

	case value < 1<<5: // display shift, fields not decoded
		ann = basicAnnotation(annotation.DisplayShift, "Display shift: <not implemented>")

	case value < 1<<6: // function set
		if value&(1<<4) != 0 {
			mode = EightBit
			ann = basicAnnotation(annotation.FunctionSet, "Function Set: 8 bit mode")
		} else {
			mode = FourBitFirstNibble
			ann = basicAnnotation(annotation.FunctionSet, "Function Set: 4 bit mode")
		}
		d.logger.Debug("Bus width switched",
			log.Stringer("mode", mode),
			log.Uint8("command", value))

	case value < 1<<7: // set CGRAM address
		ann = basicAnnotation(annotation.SetCGRAMAddress,
			fmt.Sprintf("Set CGRAM Address: 0x%2x", value&0x3f))

	case value >= 1<<7: // set DDRAM address
		ann = basicAnnotation(annotation.SetDDRAMAddress,
			fmt.Sprintf("Set DDRAM Address: 0x%2x", value&0x7f))
	}

	return ann, mode
}

// entryModeAnnotation builds the entry mode set labels. The cursor move
// direction comes from bit 0. The display shift flag is always reported as
// false, matching the established output of this decoder.
func entryModeAnnotation(value uint8) annotation.Annotation {
	direction := "dec"
	if value&0x01 != 0 {
		direction = "inc"
	}
	shift := "false"

	return annotation.Annotation{
		Class: annotation.EntryModeSet,
		Labels: []string{
			fmt.Sprintf("Entry mode: direction: %s, shift: %s", direction, shift),
			fmt.Sprintf("Dir: %s, shift: %s", direction, shift),
			fmt.Sprintf("%s, %s", direction, shift),
			fmt.Sprintf("%c, %c", direction[0], shift[0]),
		},
	}
}

// basicAnnotation builds the standard label variant list for a class: the
// full class description, any extra detail labels, and the single-character
// form of the description last.
func basicAnnotation(class annotation.Class, extra ...string) annotation.Annotation {
	description := class.Description()

	labels := make([]string, 0, len(extra)+2)
	labels = append(labels, description)
	labels = append(labels, extra...)
	labels = append(labels, description[:1])

	return annotation.Annotation{
		Class:  class,
		Labels: labels,
	}
}
