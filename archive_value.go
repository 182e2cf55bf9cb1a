package rsync

import (
	"strconv"
	"strings"
)

// targetObject resolves a possibly-pointer Object to the Object whose Raw
// actually carries the value: pointer Objects transparently target their
// pointee, per spec.md §6.
func (a *Archive) targetObject(obj *Object) *Object {
	for obj.IsValid() && obj.Type.IsPointer {
		obj = a.objects.Lookup(obj.PointeeUID())
	}
	return obj
}

func requirePrimitive(obj *Object) error {
	if !obj.IsValid() {
		return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "value access on invalid object")
	}
	if obj.Type.IsClass() {
		return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "value access on class object %s", obj.Type)
	}
	return nil
}

// SetIntValue stores v as obj's (or its pointee's) binary Raw payload,
// asserting obj's type is an integer or enum kind.
func (a *Archive) SetIntValue(uid UID, v int64) error {
	obj := a.targetObject(a.objects.Lookup(uid))
	if err := requirePrimitive(obj); err != nil {
		return err
	}
	if !obj.Type.IsInteger() && obj.Type.BaseKind != KindEnum {
		return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "SetIntValue on non-integer type %s", obj.Type)
	}
	if obj.Type.IsUnsigned() || obj.Type.BaseKind == KindEnum {
		obj.Raw = packUint(uint64(v), obj.Type.Size)
	} else {
		obj.Raw = packInt(v, obj.Type.Size)
	}
	a.markModified()
	return nil
}

// SetRealValue stores v, asserting obj's type is real32 or real64.
func (a *Archive) SetRealValue(uid UID, v float64) error {
	obj := a.targetObject(a.objects.Lookup(uid))
	if err := requirePrimitive(obj); err != nil {
		return err
	}
	if !obj.Type.IsReal() {
		return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "SetRealValue on non-real type %s", obj.Type)
	}
	obj.Raw = packFloat(v, obj.Type.Size)
	a.markModified()
	return nil
}

// SetBoolValue stores v as a single byte, asserting obj's type is bool.
func (a *Archive) SetBoolValue(uid UID, v bool) error {
	obj := a.targetObject(a.objects.Lookup(uid))
	if err := requirePrimitive(obj); err != nil {
		return err
	}
	if obj.Type.BaseKind != KindBool {
		return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "SetBoolValue on non-bool type %s", obj.Type)
	}
	if v {
		obj.Raw = []byte{1}
	} else {
		obj.Raw = []byte{0}
	}
	a.markModified()
	return nil
}

// SetEnumValue stores v and, to tolerate width drift between sender and
// receiver enum declarations, overwrites obj's stored Size to
// widthBytes -- the receiver's native enum width -- before packing, per
// spec.md §6.
func (a *Archive) SetEnumValue(uid UID, v uint64, widthBytes uint32) error {
	obj := a.targetObject(a.objects.Lookup(uid))
	if err := requirePrimitive(obj); err != nil {
		return err
	}
	if obj.Type.BaseKind != KindEnum {
		return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "SetEnumValue on non-enum type %s", obj.Type)
	}
	obj.Type.Size = widthBytes
	obj.Raw = packUint(v, widthBytes)
	a.markModified()
	return nil
}

// SetAutoValue parses text according to obj's BaseKind and stores it,
// dispatching to SetIntValue/SetRealValue/SetBoolValue/SetEnumValue.
func (a *Archive) SetAutoValue(uid UID, text string) error {
	obj := a.targetObject(a.objects.Lookup(uid))
	if !obj.IsValid() {
		return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "SetAutoValue on invalid object")
	}
	switch {
	case obj.Type.BaseKind == KindBool:
		v, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, err, "invalid bool text %q", text)
		}
		return a.SetBoolValue(uid, v)
	case obj.Type.BaseKind == KindEnum:
		v, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, err, "invalid enum text %q", text)
		}
		return a.SetEnumValue(uid, v, obj.Type.Size)
	case obj.Type.IsReal():
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, err, "invalid real text %q", text)
		}
		return a.SetRealValue(uid, v)
	case obj.Type.IsInteger():
		v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, err, "invalid int text %q", text)
		}
		return a.SetIntValue(uid, v)
	default:
		return archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "SetAutoValue unsupported for type %s", obj.Type)
	}
}

// ValueAsString renders obj's Raw the same way the wire codec would --
// re-parsing as the target type and re-formatting -- so that
// ValueAsString(o after SetAutoValue(o, v)) == normalize(v).
func (a *Archive) ValueAsString(uid UID) (string, error) {
	obj := a.targetObject(a.objects.Lookup(uid))
	if err := requirePrimitive(obj); err != nil {
		return "", err
	}
	text, err := decimalTextFromRaw(obj.Type, obj.Raw)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

func (a *Archive) ValueAsInt(uid UID) (int64, error) {
	obj := a.targetObject(a.objects.Lookup(uid))
	if err := requirePrimitive(obj); err != nil {
		return 0, err
	}
	switch {
	case obj.Type.BaseKind == KindEnum || obj.Type.IsUnsigned():
		v, err := unpackUint(obj.Raw, obj.Type.Size)
		return int64(v), err
	case obj.Type.IsInteger():
		return unpackInt(obj.Raw, obj.Type.Size)
	default:
		return 0, archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "ValueAsInt on non-integer type %s", obj.Type)
	}
}

func (a *Archive) ValueAsReal(uid UID) (float64, error) {
	obj := a.targetObject(a.objects.Lookup(uid))
	if err := requirePrimitive(obj); err != nil {
		return 0, err
	}
	if !obj.Type.IsReal() {
		return 0, archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "ValueAsReal on non-real type %s", obj.Type)
	}
	return unpackFloat(obj.Raw, obj.Type.Size)
}

// ValueAsBool returns false for a null pointee (matching the source
// framework's behavior, kept intentionally per spec.md §9) and raises
// TypeMismatchOnSetValue for any non-bool type, also per §9.
func (a *Archive) ValueAsBool(uid UID) (bool, error) {
	obj := a.objects.Lookup(uid)
	if obj.IsValid() && obj.Type.IsPointer && !obj.PointeeUID().IsValid() {
		return false, nil
	}
	obj = a.targetObject(obj)
	if err := requirePrimitive(obj); err != nil {
		return false, err
	}
	if obj.Type.BaseKind != KindBool {
		return false, archiveErrf(ErrTypeMismatchOnSetValue, nil, 0, nil, "ValueAsBool on non-bool type %s", obj.Type)
	}
	return len(obj.Raw) > 0 && obj.Raw[0] != 0, nil
}
