package actor

import (
	"reflect"
	"unsafe"

	"github.com/duke-git/lancet/v2/convertor"
)

// snapshot 处理前保存的实例状态，restore 原地写回
type snapshot struct {
	target reflect.Value
	saved  reflect.Value
}

// takeSnapshot 保存 p 指向的值
// 指针实例保存其指向的值，保持指针本身不变；
// 顶层字段（包括未导出字段）按值保存，map 与 slice 字段再深拷贝一份
func takeSnapshot(p any) *snapshot {
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil
	}
	target := rv.Elem()
	if target.Kind() == reflect.Pointer {
		if target.IsNil() {
			return nil
		}
		target = target.Elem()
	}
	if !target.CanSet() {
		return nil
	}

	saved := reflect.New(target.Type()).Elem()
	saved.Set(target)
	cloneRefs(saved)
	return &snapshot{target: target, saved: saved}
}

func (s *snapshot) restore() {
	if s == nil {
		return
	}
	s.target.Set(s.saved)
}

// cloneRefs 深拷贝 v 中的 map 与 slice，使其不再与实例共享底层存储
// 指针与接口字段仍然共享
func cloneRefs(v reflect.Value) {
	switch v.Kind() {
	case reflect.Map, reflect.Slice:
		if !v.IsNil() {
			v.Set(cloneRef(v))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if !f.CanSet() {
				// 未导出字段
				f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
			}
			cloneRefs(f)
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			cloneRefs(v.Index(i))
		}
	}
}

// cloneRef 元素只含导出字段时交给 DeepClone，否则逐个元素复制
func cloneRef(v reflect.Value) reflect.Value {
	if exportedOnly(v.Type().Elem(), map[reflect.Type]bool{}) {
		return reflect.ValueOf(convertor.DeepClone(v.Interface()))
	}
	switch v.Kind() {
	case reflect.Map:
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			elem := reflect.New(v.Type().Elem()).Elem()
			elem.Set(iter.Value())
			cloneRefs(elem)
			out.SetMapIndex(iter.Key(), elem)
		}
		return out
	default:
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Cap())
		reflect.Copy(out, v)
		for i := 0; i < out.Len(); i++ {
			cloneRefs(out.Index(i))
		}
		return out
	}
}

// exportedOnly t 中没有未导出的结构体字段
func exportedOnly(t reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[t] {
		return true
	}
	seen[t] = true
	switch t.Kind() {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || !exportedOnly(f.Type, seen) {
				return false
			}
		}
		return true
	case reflect.Map:
		return exportedOnly(t.Key(), seen) && exportedOnly(t.Elem(), seen)
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return exportedOnly(t.Elem(), seen)
	}
	return true
}
