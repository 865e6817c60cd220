// Package registry builds typed, conflict-checked constant tables from the
// <enums> sections of a Khronos-style API registry such as gl.xml.
//
// A registry document is consumed as a [Stream] of tag [Event]s. Each
// <enums> scope is folded into a shared [Table] by [FoldEnums], which
// resolves every entry's numeric text with [ResolveValue] and rejects a key
// that is redefined with a different value. Scopes that name a group record
// the names they introduce in a [Group].
//
// [Load] and [ParseReader] drive the fold over a whole document, and
// [FormatGo], [FormatJSON] and [FormatYAML] write the result:
//
//	reg, err := registry.ParseReader(ctx, f)
//	if err != nil {
//		return err
//	}
//
//	return registry.FormatGo(ctx, os.Stdout, reg,
//		registry.WithStrip(true),
//		registry.WithAPI("gles2"),
//	)
//
// Individual entries render to Go constant specifications with [Render]:
//
//	TRIANGLES GLenum = 0x4
//	DEPTH_BUFFER_BIT GLbitfield = 0x00000100
//
// Every error returned by the package, other than those of the caller's
// writer, matches one of the Err sentinels with [errors.Is] and implements
// [log/slog.LogValuer].
package registry
