// Package assetpack implements the asset profile builder: the merge of an
// expanded registry profile with an optional asset-authored override
// document into the concrete profile consumed by the viewer and the
// motion-controller runtime.
//
// The merge policy is override-wins-when-present, else inherit, applied by
// one named merge function per entity level. A component's visual-response
// set is replaced wholesale when the override supplies one; there is no
// per-field interleaving. Overrides can only customize handedness variants
// the registry profile already declares.
package assetpack
