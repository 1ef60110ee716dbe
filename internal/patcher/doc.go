// Package patcher strips linker-flag tokens from the build configurations of
// an Xcode target. Run performs the whole load, mutate, persist sequence on a
// descriptor path; Apply mutates an already loaded project. Both are driven
// by a rules.Rule naming the target, the settings, and the tokens to remove.
package patcher
