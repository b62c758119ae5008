package workers

import (
	"context"

	"github.com/alisideas/bookshare/sdk/logger"
)

// AddPreProcessHooks adds hooks run between Checkout and Process.
func (wp *WorkerPool[T]) AddPreProcessHooks(hooks ...PreProcessHook[T]) {
	wp.preProcessHooks = append(wp.preProcessHooks, hooks...)
}

// AddPostProcessHooks adds hooks run between Process and Complete/Fail.
func (wp *WorkerPool[T]) AddPostProcessHooks(hooks ...PostProcessHook[T]) {
	wp.postProcessHooks = append(wp.postProcessHooks, hooks...)
}

// LogOutcomeHook logs every processed task at debug, failures at warn.
func LogOutcomeHook[T Task](log *logger.Logger) PostProcessHook[T] {
	return func(ctx context.Context, task T, err error) error {
		if err != nil {
			log.WarnContext(ctx, "task failed", "task_id", task.GetID(), "error", err)
			return nil
		}
		log.DebugContext(ctx, "task processed", "task_id", task.GetID())
		return nil
	}
}
