/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

// Name component types.
const (
	GenericNameComponent     uint16 = 0x08
	SegmentNameComponent     uint16 = 0x32
	VersionNameComponent     uint16 = 0x36
	SequenceNumNameComponent uint16 = 0x3a
)

var componentTypeAliases = map[string]uint16{
	"seg": SegmentNameComponent,
	"v":   VersionNameComponent,
	"seq": SequenceNumNameComponent,
}

// NameComponent represents an NDN name component.
type NameComponent struct {
	Typ uint16
	Val []byte
}

// NewGenericNameComponent creates a generic name component.
func NewGenericNameComponent(value []byte) NameComponent {
	return NameComponent{Typ: GenericNameComponent, Val: value}
}

// NewNumberNameComponent creates a name component whose value is a non-negative integer.
func NewNumberNameComponent(typ uint16, value uint64) NameComponent {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, value)
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return NameComponent{Typ: typ, Val: buf[i:]}
}

// NewSequenceNumNameComponent creates a sequence number name component.
func NewSequenceNumNameComponent(seq uint64) NameComponent {
	return NewNumberNameComponent(SequenceNumNameComponent, seq)
}

// Number decodes the value of the component as a non-negative integer.
func (c NameComponent) Number() uint64 {
	var v uint64
	for _, b := range c.Val {
		v = v<<8 | uint64(b)
	}
	return v
}

func (c NameComponent) String() string {
	switch c.Typ {
	case GenericNameComponent:
		return escapeComponent(c.Val)
	case SegmentNameComponent:
		return "seg=" + strconv.FormatUint(c.Number(), 10)
	case VersionNameComponent:
		return "v=" + strconv.FormatUint(c.Number(), 10)
	case SequenceNumNameComponent:
		return "seq=" + strconv.FormatUint(c.Number(), 10)
	default:
		return strconv.FormatUint(uint64(c.Typ), 10) + "=" + escapeComponent(c.Val)
	}
}

// Equals returns whether the two name components match.
func (c NameComponent) Equals(other NameComponent) bool {
	return c.Typ == other.Typ && bytes.Equal(c.Val, other.Val)
}

// DeepCopy makes a deep copy of the name component.
func (c NameComponent) DeepCopy() NameComponent {
	val := make([]byte, len(c.Val))
	copy(val, c.Val)
	return NameComponent{Typ: c.Typ, Val: val}
}

// Name represents an NDN name.
type Name struct {
	components []NameComponent
}

// NewName constructs an empty name.
func NewName() *Name {
	return new(Name)
}

var errInvalidURI = errors.New("name URI must start with /")

// NameFromString parses a name in URI form.
func NameFromString(str string) (*Name, error) {
	n := new(Name)
	str = strings.TrimPrefix(str, "ndn:")
	if len(str) == 0 || str == "/" {
		return n, nil
	}
	if str[0] != '/' {
		return nil, errors.Wrap(errInvalidURI, str)
	}

	for _, component := range strings.Split(str[1:], "/") {
		if len(component) == 0 {
			// Trailing or doubled slash
			continue
		}
		typ := GenericNameComponent
		value := component
		if eq := strings.IndexByte(component, '='); eq >= 0 {
			typString := component[:eq]
			value = component[eq+1:]
			if alias, ok := componentTypeAliases[typString]; ok {
				num, err := strconv.ParseUint(value, 10, 64)
				if err != nil {
					return nil, errors.Wrap(err, "component "+component+" is not a decimal number")
				}
				n.Append(NewNumberNameComponent(alias, num))
				continue
			}
			parsed, err := strconv.ParseUint(typString, 10, 16)
			if err != nil {
				return nil, errors.Wrap(err, "unable to decode component type \""+typString+"\"")
			}
			typ = uint16(parsed)
		}

		unescaped, err := unescapeComponent(value)
		if err != nil {
			return nil, err
		}
		n.Append(NameComponent{Typ: typ, Val: unescaped})
	}
	return n, nil
}

// MustNameFromString parses a name and panics on failure. Only for constants and tests.
func MustNameFromString(str string) *Name {
	n, err := NameFromString(str)
	if err != nil {
		panic(err)
	}
	return n
}

const upperHex = "0123456789ABCDEF"

func escapeComponent(in []byte) string {
	out := make([]byte, 0, 3*len(in)) // Capacity of 3 * len is worst case if every character has to be escaped
	nPeriods := 0
	for _, b := range in {
		switch {
		case b == '.':
			nPeriods++
			fallthrough
		case (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '-' || b == '_' || b == '~':
			out = append(out, b)
		default:
			out = append(out, '%', upperHex[b>>4], upperHex[b&0x0f])
		}
	}
	if nPeriods == len(in) {
		out = append(out, '.', '.', '.')
	}
	return string(out)
}

func unescapeComponent(in string) ([]byte, error) {
	if len(in) >= 3 && strings.Trim(in, ".") == "" {
		return []byte(in[3:]), nil
	}

	out := make([]byte, 0, len(in)) // Capacity is worst case if nothing to be unescaped
	for i := 0; i < len(in); i++ {
		if in[i] == '%' {
			if len(in) <= i+2 {
				return nil, errors.New("incomplete escape sequence")
			}
			unescaped, err := hex.DecodeString(in[i+1 : i+3])
			if err != nil {
				return nil, errors.New("could not decode escape sequence")
			}
			out = append(out, unescaped...)
			i += 2
		} else {
			out = append(out, in[i])
		}
	}
	return out, nil
}

func (n *Name) String() string {
	if n == nil || len(n.components) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, component := range n.components {
		b.WriteByte('/')
		b.WriteString(component.String())
	}
	return b.String()
}

// Append adds the specified name component to the end of the name.
func (n *Name) Append(component NameComponent) *Name {
	n.components = append(n.components, component)
	return n
}

// At returns the name component at the specified index. Negative indices count from the end.
// Out of range indices return a zero component.
func (n *Name) At(index int) NameComponent {
	if index < 0 {
		index += len(n.components)
	}
	if index < 0 || index >= len(n.components) {
		return NameComponent{}
	}
	return n.components[index]
}

// Size returns the number of components in the name.
func (n *Name) Size() int {
	if n == nil {
		return 0
	}
	return len(n.components)
}

// DeepCopy returns a deep copy of the name.
func (n *Name) DeepCopy() *Name {
	out := new(Name)
	out.components = make([]NameComponent, len(n.components))
	for i, component := range n.components {
		out.components[i] = component.DeepCopy()
	}
	return out
}

// Prefix returns a name prefix of the specified number of components.
// Negative sizes drop that many components from the end.
func (n *Name) Prefix(size int) *Name {
	if size > len(n.components) {
		size = len(n.components)
	}
	if size < 0 {
		size += len(n.components)
	}
	out := new(Name)
	if size > 0 {
		out.components = n.components[:size:size]
	}
	return out
}

// Equals returns whether the specified name is equal to this name.
func (n *Name) Equals(other *Name) bool {
	if n.Size() != other.Size() {
		return false
	}
	for i := 0; i < n.Size(); i++ {
		if !n.components[i].Equals(other.components[i]) {
			return false
		}
	}
	return true
}

// PrefixOf returns whether this name is a prefix of the specified name.
func (n *Name) PrefixOf(other *Name) bool {
	if other == nil || n.Size() > other.Size() {
		return false
	}
	for i := 0; i < n.Size(); i++ {
		if !n.components[i].Equals(other.components[i]) {
			return false
		}
	}
	return true
}

// Hash returns a hash of the name, equal for equal names.
func (n *Name) Hash() uint64 {
	return n.PrefixHash(n.Size())
}

// PrefixHash returns the hash of the first size components of the name.
func (n *Name) PrefixHash(size int) uint64 {
	h := xxhash.New()
	var tl [4]byte
	for i := 0; i < size && i < n.Size(); i++ {
		binary.BigEndian.PutUint16(tl[:2], n.components[i].Typ)
		binary.BigEndian.PutUint16(tl[2:], uint16(len(n.components[i].Val)))
		h.Write(tl[:])
		h.Write(n.components[i].Val)
	}
	return h.Sum64()
}

// IsLocalhost returns whether the name falls under the /localhost namespace.
func (n *Name) IsLocalhost() bool {
	first := n.At(0)
	return n.Size() > 0 && first.Typ == GenericNameComponent && string(first.Val) == "localhost"
}
