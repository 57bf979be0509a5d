package codec

import (
	"fmt"
	"reflect"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"

	ibcerrors "github.com/ibcprotocol/ibc-core/modules/core/errors"
)

// ProtoMarshaler is implemented by every value persisted in the IBC store or
// committed to by a proof. Encodings must be deterministic: two validators
// marshalling the same value must produce identical bytes.
type ProtoMarshaler interface {
	Marshal() ([]byte, error)
	Unmarshal(bz []byte) error
}

// Codec encodes concrete values and type-tagged interface values. Interface
// values (client states, consensus states, headers, misbehaviour) are wrapped in
// a protobuf Any whose type URL selects the implementation registered by a
// light client module.
type Codec struct {
	typeURLs  map[reflect.Type]string
	factories map[string]func() ProtoMarshaler
}

// NewCodec returns a Codec without any registered implementations.
func NewCodec() *Codec {
	return &Codec{
		typeURLs:  make(map[reflect.Type]string),
		factories: make(map[string]func() ProtoMarshaler),
	}
}

// RegisterImplementation binds a type URL to the concrete type returned by
// factory. It panics if either the type URL or the concrete type has already
// been registered.
func (cdc *Codec) RegisterImplementation(typeURL string, factory func() ProtoMarshaler) {
	if _, ok := cdc.factories[typeURL]; ok {
		panic(fmt.Errorf("type URL %s has already been registered", typeURL))
	}

	typ := reflect.TypeOf(factory())
	if _, ok := cdc.typeURLs[typ]; ok {
		panic(fmt.Errorf("concrete type %s has already been registered", typ))
	}

	cdc.factories[typeURL] = factory
	cdc.typeURLs[typ] = typeURL
}

// TypeURL returns the type URL registered for the concrete type of msg.
func (cdc *Codec) TypeURL(msg ProtoMarshaler) (string, bool) {
	typeURL, ok := cdc.typeURLs[reflect.TypeOf(msg)]
	return typeURL, ok
}

// Marshal encodes a concrete value.
func (cdc *Codec) Marshal(msg ProtoMarshaler) ([]byte, error) {
	return msg.Marshal()
}

// MustMarshal encodes a concrete value and panics on failure.
func (cdc *Codec) MustMarshal(msg ProtoMarshaler) []byte {
	bz, err := cdc.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return bz
}

// Unmarshal decodes bz into the concrete value msg.
func (cdc *Codec) Unmarshal(bz []byte, msg ProtoMarshaler) error {
	return msg.Unmarshal(bz)
}

// MustUnmarshal decodes bz into msg and panics on failure.
func (cdc *Codec) MustUnmarshal(bz []byte, msg ProtoMarshaler) {
	if err := cdc.Unmarshal(bz, msg); err != nil {
		panic(err)
	}
}

// MarshalInterface encodes msg as a type-tagged Any.
func (cdc *Codec) MarshalInterface(msg ProtoMarshaler) ([]byte, error) {
	if msg == nil || (reflect.ValueOf(msg).Kind() == reflect.Ptr && reflect.ValueOf(msg).IsNil()) {
		return nil, sdkerrors.Wrap(ibcerrors.ErrPackAny, "cannot pack nil message")
	}

	typeURL, ok := cdc.TypeURL(msg)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrPackAny, "type %T is not registered", msg)
	}

	value, err := msg.Marshal()
	if err != nil {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrPackAny, "failed to marshal %T: %s", msg, err)
	}

	any := &anypb.Any{TypeUrl: typeURL, Value: value}
	return proto.MarshalOptions{Deterministic: true}.Marshal(any)
}

// UnmarshalInterface decodes a type-tagged Any into a freshly allocated value of
// the registered concrete type.
func (cdc *Codec) UnmarshalInterface(bz []byte) (ProtoMarshaler, error) {
	var any anypb.Any
	if err := proto.Unmarshal(bz, &any); err != nil {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrUnpackAny, "failed to decode any: %s", err)
	}

	factory, ok := cdc.factories[any.TypeUrl]
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrUnpackAny, "no implementation registered for type URL %s", any.TypeUrl)
	}

	msg := factory()
	if err := msg.Unmarshal(any.Value); err != nil {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrUnpackAny, "failed to decode %s: %s", any.TypeUrl, err)
	}

	return msg, nil
}
