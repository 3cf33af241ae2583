package worker

import (
	"context"
	"fmt"
	"os"
)

// Worker - долгоживущий потребитель стрима под управлением WorkerManager
type Worker interface {
	// Start блокируется до Stop или отмены ctx
	Start(ctx context.Context) error
	// Stop идемпотентен
	Stop() error
	Name() string
}

// ConsumerName - имя консьюмера в группе: host-pid. Стабильно в пределах процесса,
// поэтому после рестарта под тем же именем воркер перечитает свои неподтвержденные сообщения.
func ConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
