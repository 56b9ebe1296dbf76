// Package core contains the domain types shared across the AgendaMesh
// subsystems: schedule entries, the active date window, the per-turn working
// set and the conversation message model exchanged with language models.
//
// The types here are deliberately free of I/O. Persistence lives in the store
// package, model transport in the model package and orchestration in agent.
package core
