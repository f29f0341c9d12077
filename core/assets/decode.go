package assets

import "encoding/json"

// JSONDecoder returns a decoder that unmarshals file bytes with factory's
// return value as the target. The factory must return a pointer; the
// realized content is the pointed-to value.
//
//	server.RegisterDecoder(".spell.json", assets.JSONDecoder(func() any {
//	    return &Spell{}
//	}))
func JSONDecoder(factory func() any) Decoder {
	return func(data []byte) (any, error) {
		target := factory()
		if err := json.Unmarshal(data, target); err != nil {
			return nil, err
		}
		return target, nil
	}
}
