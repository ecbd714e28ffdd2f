// Package codec serializes request bodies and decodes response bodies.
// JSON is the default wire format; MessagePack is available for services
// that speak it.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes structured values for one media type.
type Codec interface {
	Name() string
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

const (
	// NameJSON is the configuration name of the JSON codec.
	NameJSON = "json"
	// NameMsgPack is the configuration name of the MessagePack codec.
	NameMsgPack = "msgpack"
)

// JSON is the default codec.
var JSON Codec = jsonCodec{}

// MsgPack encodes bodies as MessagePack.
var MsgPack Codec = msgpackCodec{}

// ByName returns the codec registered under name. An empty name selects JSON.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameJSON:
		return JSON, nil
	case NameMsgPack:
		return MsgPack, nil
	default:
		return nil, fmt.Errorf("codec: unknown codec %q", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string        { return NameJSON }
func (jsonCodec) ContentType() string { return "application/json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal rejects trailing data after the first value.
func (jsonCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("codec: unexpected data after JSON value")
	}
	return nil
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string        { return NameMsgPack }
func (msgpackCodec) ContentType() string { return "application/msgpack" }

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
