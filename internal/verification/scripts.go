package verification

import "github.com/redis/go-redis/v9"

const (
	verifyOK = iota
	verifyNoChallenge
	verifyExpired
	verifyInvalidCode
	verifyTooManyAttempts
)

// KEYS[1] challenge hash; ARGV code, now (unix ms), max attempts (0 = no limit)
var verifyScript = redis.NewScript(`
local c = redis.call('HMGET', KEYS[1], 'code', 'expires_at', 'attempts', 'consumed')
if not c[1] or c[4] == '1' then
  return 1
end
if tonumber(ARGV[2]) >= tonumber(c[2]) then
  return 2
end
local max = tonumber(ARGV[3])
if max > 0 and tonumber(c[3]) >= max then
  return 4
end
if c[1] ~= ARGV[1] then
  redis.call('HINCRBY', KEYS[1], 'attempts', 1)
  return 3
end
redis.call('HSET', KEYS[1], 'consumed', '1')
return 0
`)

// KEYS[1] challenge hash; ARGV challenge id
var withdrawScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'id') == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`)
