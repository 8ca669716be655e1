package repoargs

// MaxMatchedTransactions наибольшее количество транзакций, которое возвращает поиск по кандидатам одного юзера.
// Если выборка достигла предела, более старые транзакции в нее не попали.
const MaxMatchedTransactions = 1000
