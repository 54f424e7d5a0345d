// Package podspec reads pod specification files into Spec descriptors.
//
// Three encodings are understood, selected by file extension:
//
//   - Foo.podspec: the plain DSL. Attributes are extracted statically, so
//     name and version must be string literals.
//   - Foo.podspec.json: the serialized JSON form.
//   - Foo.podspec.yaml / Foo.podspec.yml: the same document in YAML.
package podspec
