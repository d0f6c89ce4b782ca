package richdoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Raw block type names.
const (
	RawTypeUnstyled    = "unstyled"
	RawTypeHeaderOne   = "header-one"
	RawTypeHeaderTwo   = "header-two"
	RawTypeHeaderThree = "header-three"
	RawTypeBlockquote  = "blockquote"
	RawTypeCodeBlock   = "code-block"
)

const (
	rawEntityLink        = "LINK"
	rawMutabilityMutable = "MUTABLE"
)

// ErrUnknownRawType is returned by FromRaw for an unrecognized block type.
var ErrUnknownRawType = errors.New("unknown raw block type")

// ErrMissingEntity is returned by FromRaw when an entity range references
// a key absent from the entity map.
var ErrMissingEntity = errors.New("missing entity")

// RawContent is the JSON interchange form of a Document: blocks with style
// ranges, link entities collected into an entity map, and document data.
type RawContent struct {
	Blocks    []RawBlock           `json:"blocks"`
	EntityMap map[string]RawEntity `json:"entityMap"`
	Data      map[string]any       `json:"data,omitempty"`
}

// RawBlock is one block of RawContent.
type RawBlock struct {
	Key               string           `json:"key"`
	Type              string           `json:"type"`
	Text              string           `json:"text"`
	Depth             int              `json:"depth"`
	InlineStyleRanges []RawStyleRange  `json:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange `json:"entityRanges"`
	Data              map[string]any   `json:"data,omitempty"`
}

// RawStyleRange is a style range in RawContent.
type RawStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// RawEntityRange points a text range at an entity map key.
type RawEntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

// RawEntity is an entity map entry. Only LINK entities are produced.
type RawEntity struct {
	Type       string         `json:"type"`
	Mutability string         `json:"mutability"`
	Data       map[string]any `json:"data"`
}

// ToRaw converts a document to its raw interchange form.
func ToRaw(doc Document) RawContent {
	raw := RawContent{
		Blocks:    make([]RawBlock, 0, len(doc.Blocks)),
		EntityMap: make(map[string]RawEntity),
	}
	if doc.HasMetadata() {
		raw.Data = doc.Metadata
	}

	entityKey := 0
	for _, b := range doc.Blocks {
		rb := RawBlock{
			Key:               b.Key,
			Type:              rawType(b),
			Text:              b.Text,
			InlineStyleRanges: make([]RawStyleRange, 0, len(b.Styles)),
			EntityRanges:      make([]RawEntityRange, 0, len(b.Links)),
		}
		for _, s := range b.Styles {
			rb.InlineStyleRanges = append(rb.InlineStyleRanges, RawStyleRange{
				Offset: s.Offset,
				Length: s.Length,
				Style:  s.Style.String(),
			})
		}
		for _, l := range b.Links {
			raw.EntityMap[strconv.Itoa(entityKey)] = RawEntity{
				Type:       rawEntityLink,
				Mutability: rawMutabilityMutable,
				Data:       map[string]any{"url": l.Href},
			}
			rb.EntityRanges = append(rb.EntityRanges, RawEntityRange{
				Offset: l.Offset,
				Length: l.Length,
				Key:    entityKey,
			})
			entityKey++
		}
		if b.Language != "" {
			rb.Data = map[string]any{"language": b.Language}
		}
		raw.Blocks = append(raw.Blocks, rb)
	}
	return raw
}

// FromRaw converts raw interchange content back into a document. The result
// is validated; invariant violations are returned as errors.
func FromRaw(raw RawContent) (Document, error) {
	doc := Document{
		Metadata: raw.Data,
		Blocks:   make([]Block, 0, len(raw.Blocks)),
	}

	for i, rb := range raw.Blocks {
		b, err := blockFromRaw(rb)
		if err != nil {
			return Document{}, fmt.Errorf("block %d: %w", i, err)
		}
		for _, er := range rb.EntityRanges {
			entity, ok := raw.EntityMap[strconv.Itoa(er.Key)]
			if !ok {
				return Document{}, fmt.Errorf("block %d: %w: %d", i, ErrMissingEntity, er.Key)
			}
			if entity.Type != rawEntityLink {
				continue
			}
			href, _ := entity.Data["url"].(string)
			b.Links = append(b.Links, LinkRange{Offset: er.Offset, Length: er.Length, Href: href})
		}
		doc.Blocks = append(doc.Blocks, b)
	}

	if err := Validate(doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// MarshalRaw encodes a document as indented raw JSON.
func MarshalRaw(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(ToRaw(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal raw content: %w", err)
	}
	return data, nil
}

// UnmarshalRaw decodes raw JSON into a validated document.
func UnmarshalRaw(data []byte) (Document, error) {
	var raw RawContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("unmarshal raw content: %w", err)
	}
	return FromRaw(raw)
}

func rawType(b Block) string {
	switch b.Kind {
	case Heading:
		switch b.Level {
		case 1:
			return RawTypeHeaderOne
		case 2:
			return RawTypeHeaderTwo
		default:
			return RawTypeHeaderThree
		}
	case Blockquote:
		return RawTypeBlockquote
	case Code:
		return RawTypeCodeBlock
	default:
		return RawTypeUnstyled
	}
}

func blockFromRaw(rb RawBlock) (Block, error) {
	b := Block{Key: rb.Key, Text: rb.Text}
	switch rb.Type {
	case RawTypeUnstyled, "paragraph", "":
		b.Kind = Paragraph
	case RawTypeHeaderOne:
		b.Kind, b.Level = Heading, 1
	case RawTypeHeaderTwo:
		b.Kind, b.Level = Heading, 2
	case RawTypeHeaderThree:
		b.Kind, b.Level = Heading, 3
	case RawTypeBlockquote:
		b.Kind = Blockquote
	case RawTypeCodeBlock:
		b.Kind = Code
	default:
		return Block{}, fmt.Errorf("%w: %q", ErrUnknownRawType, rb.Type)
	}

	for _, rs := range rb.InlineStyleRanges {
		style, ok := ParseStyle(rs.Style)
		if !ok {
			return Block{}, fmt.Errorf("%w: %q", ErrUnknownStyle, rs.Style)
		}
		b.Styles = append(b.Styles, StyleRange{Style: style, Offset: rs.Offset, Length: rs.Length})
	}
	if lang, ok := rb.Data["language"].(string); ok {
		b.Language = lang
	}
	return b, nil
}
